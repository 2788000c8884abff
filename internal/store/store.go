package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DefaultAdminCode is the USER_CODE of the seeded administrator.
const DefaultAdminCode = "admin"

type Store struct {
	db *gorm.DB
}

func New(ctx context.Context, driver, dsn string, cfg *config.Config) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Every new connection to :memory: opens a separate empty database
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.CommCode{},
		&models.AuditLog{},
	); err != nil {
		return nil, err
	}

	store := &Store{db: db}

	if err := store.seedData(ctx, cfg); err != nil {
		log.Printf("Warning: failed to seed data: %v", err)
	}

	return store, nil
}

func (s *Store) seedData(ctx context.Context, cfg *config.Config) error {
	tenant := int64(1)
	if cfg != nil && cfg.DefaultTenantID > 0 {
		tenant = cfg.DefaultTenantID
	}

	var userCount int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		password := ""
		if cfg != nil {
			password = strings.TrimSpace(cfg.DefaultAdminPassword)
		}
		generated := password == ""
		if generated {
			var err error
			if password, err = util.RandomPassword(16); err != nil {
				return err
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		authNum := models.AdminAuthNum
		admin := &models.User{
			UserCode:     DefaultAdminCode,
			UserName:     "Administrator",
			PasswordHash: string(hash),
			UseFlag:      models.UseFlagActive,
			UsiteNo:      tenant,
			UserLang:     "ko",
			AuthNum:      &authNum,
		}
		admin.SetFailureCount(0)
		if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
			return err
		}
		if generated {
			log.Printf("Created default user: %s / %s (M_USITE_NO: %d)", DefaultAdminCode, password, tenant)
		} else {
			log.Printf("Created default user: %s (M_USITE_NO: %d)", DefaultAdminCode, tenant)
		}
	}

	var codeCount int64
	if err := s.db.WithContext(ctx).Model(&models.CommCode{}).Count(&codeCount).Error; err != nil {
		return err
	}
	if codeCount == 0 {
		codes := []models.CommCode{
			{CodeGrp: "USE_FLAG", CodeVal: "1", CodeName: "사용", SortNo: intPtr(1)},
			{CodeGrp: "USE_FLAG", CodeVal: "0", CodeName: "미사용", SortNo: intPtr(2)},
		}
		for i := range codes {
			codes[i].UsiteNo = tenant
			codes[i].UseFlag = models.UseFlagActive
		}
		if err := s.db.WithContext(ctx).Create(&codes).Error; err != nil {
			return err
		}
	}

	return nil
}

func intPtr(v int) *int { return &v }

func column(name string) clause.Column {
	return clause.Column{Name: name}
}

// User operations

// FindActiveUserByCode returns the single active M_USER row for userCode.
// An absent or inactive user yields ErrRecordNotFound.
func (s *Store) FindActiveUserByCode(ctx context.Context, userCode string) (*models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: column("USER_CODE"), Value: userCode}).
		Where(clause.Eq{Column: column("USE_FLAG"), Value: models.UseFlagActive}).
		Limit(1).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrRecordNotFound
	}
	return &users[0], nil
}

// GetUserByNo returns a user by M_USER_NO regardless of USE_FLAG.
func (s *Store) GetUserByNo(ctx context.Context, userNo int64) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: column("M_USER_NO"), Value: userNo}).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where(clause.Eq{Column: column("USER_CODE"), Value: user.UserCode}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserCodeConflict
	}
	return s.db.WithContext(ctx).Create(user).Error
}

// CountActiveUsers returns the number of M_USER rows in use.
func (s *Store) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where(clause.Eq{Column: column("USE_FLAG"), Value: models.UseFlagActive}).
		Count(&count).Error
	return count, err
}

// CountLockedUsers returns the number of active users whose LOGIN_FAIL_CNT has reached threshold.
func (s *Store) CountLockedUsers(ctx context.Context, threshold int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where(clause.Eq{Column: column("USE_FLAG"), Value: models.UseFlagActive}).
		Where(clause.Gte{Column: column("LOGIN_FAIL_CNT"), Value: threshold}).
		Count(&count).Error
	return count, err
}

// Common code operations

// ListCommCodes returns active codes of a group for one tenant, ordered by SORT_NO then CODE_NAME.
func (s *Store) ListCommCodes(ctx context.Context, codeGrp string, usiteNo int64) ([]models.CommCode, error) {
	var codes []models.CommCode
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: column("CODE_GRP"), Value: codeGrp}).
		Where(clause.Eq{Column: column("M_USITE_NO"), Value: usiteNo}).
		Where(clause.Eq{Column: column("USE_FLAG"), Value: models.UseFlagActive}).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: column("SORT_NO")},
			{Column: column("CODE_NAME")},
		}}).
		Find(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *Store) CreateCommCode(ctx context.Context, code *models.CommCode) error {
	return s.db.WithContext(ctx).Create(code).Error
}

// Health checks the database connection
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DB returns the underlying GORM database connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
