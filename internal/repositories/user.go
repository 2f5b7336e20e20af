package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bazari/internal/models"
	"bazari/internal/repositories/cache"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const userCacheTTL = 24 * time.Hour

func userCacheKeyByID(id uint) string {
	return fmt.Sprintf("user:id:%d", id)
}

func UserCacheKeyByEmail(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	IncrementTokenVersion(userID uint) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService) UserRepository {
	return &userRepository{db: db, cache: cacheService}
}

func (r *userRepository) Create(user *models.User) error {
	var existing models.User
	err := r.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	r.invalidate(user)
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	key := userCacheKeyByID(id)
	var cached models.User
	if hit, err := r.cacheGet(key, &cached); hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("user cache error for id %d: %v", id, err)
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.cacheSet(key, &user)
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	key := UserCacheKeyByEmail(email)
	var cached models.User
	if hit, err := r.cacheGet(key, &cached); hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("user cache error for email %s: %v", email, err)
	}

	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.cacheSet(key, &user)
	return &user, nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	user, err := r.GetByID(userID)
	if err != nil {
		return err
	}
	user.TokenVersion++
	return r.Update(user)
}

func (r *userRepository) cacheGet(key string, dest *models.User) (bool, error) {
	if r.cache == nil {
		return false, nil
	}
	return r.cache.Get(context.Background(), key, dest)
}

func (r *userRepository) cacheSet(key string, user *models.User) {
	if r.cache == nil {
		return
	}
	// async so lookups never block on redis
	go func() {
		if err := r.cache.SetWithTTL(context.Background(), key, user, userCacheTTL); err != nil {
			log.Printf("failed to cache user: %v", err)
		}
	}()
}

func (r *userRepository) invalidate(user *models.User) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(context.Background(),
		userCacheKeyByID(user.ID),
		UserCacheKeyByEmail(user.Email),
	); err != nil {
		log.Printf("failed to invalidate user cache: %v", err)
	}
}
