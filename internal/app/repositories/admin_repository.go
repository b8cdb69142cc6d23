package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/dberrors"
	"github.com/notehive/notehive-server/internal/pkg/logger"
)

// adminColumns lists the admin_users table columns in scan order.
var adminColumns = []string{
	"id", "email", "password", "display_name",
	"is_active", "last_login_at", "created_at", "updated_at",
}

// AdminRepository handles database operations for admin accounts
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAdmin(row pgx.Row) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := row.Scan(
		&admin.ID, &admin.Email, &admin.Password, &admin.DisplayName,
		&admin.IsActive, &admin.LastLoginAt, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Msg("Error scanning admin row")
		return nil, err
	}
	return &admin, nil
}

// Create stores a new admin account. The password must already be hashed.
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	sql, args, err := r.sb.Insert("admin_users").
		Columns("email", "password", "display_name", "is_active").
		Values(admin.Email, admin.Password, admin.DisplayName, admin.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create admin SQL")
		return err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admin_users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", admin.Email).Msg("Error executing create admin query")
		return fmt.Errorf("error creating admin: %w", err)
	}

	return nil
}

// GetByEmail retrieves an admin account by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	sqlStr, args, err := r.sb.Select(adminColumns...).
		From("admin_users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get admin by email SQL")
		return nil, err
	}

	return scanAdmin(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetByID retrieves an admin account by ID
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	sqlStr, args, err := r.sb.Select(adminColumns...).
		From("admin_users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get admin by ID SQL")
		return nil, err
	}

	return scanAdmin(r.db.QueryRow(ctx, sqlStr, args...))
}

// UpdateLastLogin records a successful sign-in
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("admin_users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update last login SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing update last login query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdminNotFound
	}

	return nil
}
