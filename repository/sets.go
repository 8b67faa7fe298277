package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/andrewpaige1/fliply-api/models"
)

// SetStore is the capability handlers need from set storage.
type SetStore interface {
	Create(ctx context.Context, set *models.FlashcardSet) (string, error)
	Update(ctx context.Context, id string, set *models.FlashcardSet) error
	Get(ctx context.Context, id string) (*models.FlashcardSet, error)
	ListByOwnerOriginals(ctx context.Context, userID string) ([]models.FlashcardSet, error)
	ListByOwnerSaved(ctx context.Context, userID string) ([]models.FlashcardSet, error)
	ListByClassCode(ctx context.Context, classCode string) ([]models.SetWithCreator, error)
	Delete(ctx context.Context, id, userID string) error
	SaveAsCopy(ctx context.Context, originalID, userID string) (string, error)
}

// Sets stores flashcard sets in a single gorm table.
type Sets struct {
	db    *gorm.DB
	users *Users
	now   func() time.Time
	newID func() (string, error)
}

type Option func(*Sets)

// WithClock replaces the clock used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Sets) { s.now = now }
}

// WithIDGenerator replaces the generator used for ids of saved copies.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Sets) { s.newID = newID }
}

func NewSets(db *gorm.DB, opts ...Option) *Sets {
	s := &Sets{
		db:    db,
		users: NewUsers(db),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() (string, error) { return gonanoid.New() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeClassCode trims and uppercases a class code.
func NormalizeClassCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create persists a new original set. The set is normalized in place:
// blank cards are dropped, the class code is uppercased and numCards, icon
// and timestamps are filled in.
func (s *Sets) Create(ctx context.Context, set *models.FlashcardSet) (string, error) {
	if strings.TrimSpace(set.ID) == "" {
		return "", invalid("Missing required fields")
	}
	if err := prepare(set); err != nil {
		return "", err
	}

	now := s.now()
	set.IsDerived = false
	set.OriginalSetID = nil
	set.CreatedAt = now
	set.UpdatedAt = now

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.FlashcardSet{}).Where("id = ?", set.ID).Count(&count).Error; err != nil {
			return internal("create set", err)
		}
		if count > 0 {
			return fmt.Errorf("set %s already exists: %w", set.ID, ErrConflict)
		}
		if err := tx.Create(set).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("set %s already exists: %w", set.ID, ErrConflict)
			}
			return internal("create set", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return set.ID, nil
}

// Update overwrites the mutable fields of a set owned by set.UserID.
// Ownership, derivation and createdAt never change.
func (s *Sets) Update(ctx context.Context, id string, set *models.FlashcardSet) error {
	if err := prepare(set); err != nil {
		return err
	}
	set.ID = id
	set.UpdatedAt = s.now()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findSet(tx, id)
		if err != nil {
			return err
		}
		if existing.UserID != set.UserID {
			return fmt.Errorf("user %s does not own set %s: %w", set.UserID, id, ErrForbidden)
		}

		// Conditional on the owner so a write can't land on a row whose
		// ownership check was made against a stale read.
		res := tx.Model(&models.FlashcardSet{}).
			Where("id = ? AND user_id = ?", id, set.UserID).
			Select("title", "class_code", "description", "flashcards", "is_public", "icon", "num_cards", "updated_at").
			Updates(set)
		if res.Error != nil {
			return internal("update set", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("set %s: %w", id, ErrNotFound)
		}

		set.OriginalSetID = existing.OriginalSetID
		set.IsDerived = existing.IsDerived
		set.CreatedAt = existing.CreatedAt
		return nil
	})
}

func (s *Sets) Get(ctx context.Context, id string) (*models.FlashcardSet, error) {
	return findSet(s.db.WithContext(ctx), id)
}

// ListByOwnerOriginals returns the sets a user created, newest first.
func (s *Sets) ListByOwnerOriginals(ctx context.Context, userID string) ([]models.FlashcardSet, error) {
	return s.listByOwner(ctx, userID, false)
}

// ListByOwnerSaved returns the copies a user saved from other sets, newest first.
func (s *Sets) ListByOwnerSaved(ctx context.Context, userID string) ([]models.FlashcardSet, error) {
	return s.listByOwner(ctx, userID, true)
}

func (s *Sets) listByOwner(ctx context.Context, userID string, derived bool) ([]models.FlashcardSet, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("User ID is required")
	}

	sets := []models.FlashcardSet{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_derived = ?", userID, derived).
		Order("created_at desc").
		Find(&sets).Error
	if err != nil {
		return nil, internal("list sets by owner", err)
	}
	return sets, nil
}

// ListByClassCode returns the public sets for a class code, newest first,
// each with the display name of its owner.
func (s *Sets) ListByClassCode(ctx context.Context, classCode string) ([]models.SetWithCreator, error) {
	code := NormalizeClassCode(classCode)
	if code == "" {
		return nil, invalid("Class code is required")
	}

	var sets []models.FlashcardSet
	err := s.db.WithContext(ctx).
		Where("class_code = ? AND is_public = ?", code, true).
		Order("created_at desc").
		Find(&sets).Error
	if err != nil {
		return nil, internal("list sets by class code", err)
	}

	result := make([]models.SetWithCreator, 0, len(sets))
	if len(sets) == 0 {
		return result, nil
	}

	seen := make(map[string]bool)
	var owners []string
	for _, set := range sets {
		if set.UserID != "" && !seen[set.UserID] {
			seen[set.UserID] = true
			owners = append(owners, set.UserID)
		}
	}

	names, err := s.users.DisplayNames(ctx, owners)
	if err != nil {
		log.Warn().Err(err).Str("classCode", code).Msg("ListByClassCode: falling back to short user ids")
		names = map[string]string{}
	}

	for _, set := range sets {
		createdBy, ok := names[set.UserID]
		if !ok {
			createdBy = FallbackDisplayName(set.UserID)
		}
		result = append(result, models.SetWithCreator{FlashcardSet: set, CreatedBy: createdBy})
	}
	return result, nil
}

// Delete removes a set owned by userID. Copies saved from it are left as they are.
func (s *Sets) Delete(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("User ID is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findSet(tx, id)
		if err != nil {
			return err
		}
		if existing.UserID != userID {
			return fmt.Errorf("user %s does not own set %s: %w", userID, id, ErrForbidden)
		}

		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.FlashcardSet{})
		if res.Error != nil {
			return internal("delete set", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("set %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// SaveAsCopy clones a set into userID's collection as a derived set. A user
// can hold at most one copy of a given set.
func (s *Sets) SaveAsCopy(ctx context.Context, originalID, userID string) (string, error) {
	if strings.TrimSpace(originalID) == "" || strings.TrimSpace(userID) == "" {
		return "", invalid("Original set ID and user ID are required")
	}

	newID, err := s.newID()
	if err != nil {
		return "", internal("generate set id", err)
	}
	now := s.now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		original, err := findSet(tx, originalID)
		if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&models.FlashcardSet{}).
			Where("user_id = ? AND original_set_id = ?", userID, originalID).
			Count(&count).Error
		if err != nil {
			return internal("check saved copies", err)
		}
		if count > 0 {
			return fmt.Errorf("user %s already saved set %s: %w", userID, originalID, ErrConflict)
		}

		source := originalID
		cp := *original
		cp.ID = newID
		cp.UserID = userID
		cp.OriginalSetID = &source
		cp.IsDerived = true
		cp.Flashcards = append([]models.Flashcard(nil), original.Flashcards...)
		cp.NumCards = len(cp.Flashcards)
		cp.Icon = models.SetIcon(cp.IsPublic)
		cp.CreatedAt = now
		cp.UpdatedAt = now

		if err := tx.Create(&cp).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("user %s already saved set %s: %w", userID, originalID, ErrConflict)
			}
			return internal("save set copy", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newID, nil
}

// FallbackDisplayName is shown for owners without a profile name.
func FallbackDisplayName(userID string) string {
	short := []rune(userID)
	if len(short) > 6 {
		short = short[:6]
	}
	return "User " + string(short)
}

func findSet(db *gorm.DB, id string) (*models.FlashcardSet, error) {
	var set models.FlashcardSet
	if err := db.Where("id = ?", id).First(&set).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("set %s: %w", id, ErrNotFound)
		}
		return nil, internal("find set", err)
	}
	return &set, nil
}

func prepare(set *models.FlashcardSet) error {
	set.Title = strings.TrimSpace(set.Title)
	set.ClassCode = NormalizeClassCode(set.ClassCode)
	if set.Title == "" || set.ClassCode == "" || len(set.Flashcards) == 0 || set.UserID == "" {
		return invalid("Missing required fields")
	}

	set.Flashcards = models.NonBlank(set.Flashcards)
	if len(set.Flashcards) == 0 {
		return invalid("At least one flashcard needs a question or an answer")
	}

	set.Description = strings.TrimSpace(set.Description)
	if utf8.RuneCountInString(set.Description) > models.MaxDescriptionLength {
		return invalid(fmt.Sprintf("Description must be %d characters or fewer", models.MaxDescriptionLength))
	}

	set.NumCards = len(set.Flashcards)
	set.Icon = models.SetIcon(set.IsPublic)
	return nil
}

func internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
