package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/notehive/notehive-server/internal/app/models"
	appRepos "github.com/notehive/notehive-server/internal/app/repositories"
	"github.com/notehive/notehive-server/internal/config"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	pkgAuth "github.com/notehive/notehive-server/internal/pkg/auth"
)

// starterUnits are seeded alongside the study years, keyed by year number.
// Editors replace them with the real curriculum.
var starterUnits = map[int][]appModels.Unit{
	1: {
		{Name: "Anatomy", Code: "ANA101", Description: "Gross anatomy of the human body", Semester: 1, CreditHours: 4},
		{Name: "Physiology", Code: "PHY102", Description: "Function of organs and organ systems", Semester: 1, CreditHours: 4},
		{Name: "Biochemistry", Code: "BIO103", Description: "Molecular foundations of medicine", Semester: 2, CreditHours: 3},
	},
	2: {
		{Name: "Pathology", Code: "PAT201", Description: "Mechanisms of disease", Semester: 1, CreditHours: 4},
		{Name: "Microbiology", Code: "MIC202", Description: "Bacteria, viruses, fungi and parasites", Semester: 1, CreditHours: 3},
		{Name: "Pharmacology", Code: "PHA203", Description: "Drugs and their actions", Semester: 2, CreditHours: 3},
	},
}

var starterLecturers = []appModels.Lecturer{
	{Name: "Prof. Grace Wanjiru", Title: "Professor", Specialization: "Human anatomy"},
	{Name: "Dr. Samuel Kiprop", Title: "Senior Lecturer", Specialization: "Clinical pharmacology"},
}

// CreateDefaultData seeds the study year scaffold and the first editor
// account on an empty database. Existing data is never modified.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	yearRepo := appRepos.NewYearRepository(dbPool)
	unitRepo := appRepos.NewUnitRepository(dbPool)
	lecturerRepo := appRepos.NewLecturerRepository(dbPool)
	adminRepo := appRepos.NewAdminRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (years/units/lecturers)...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Study years 1..6 --- //
	years, err := yearRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading existing study years")
		return err
	}

	if len(years) == 0 {
		for n := 1; n <= 6; n++ {
			year := &appModels.Year{YearNumber: n, Name: fmt.Sprintf("Year %d", n)}
			if err := yearRepo.Create(ctx, year); err != nil {
				lgr.Error().Err(err).Int("yearNumber", n).Msg("Error creating study year")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			years = append(years, *year)
		}
		lgr.Info().Int("count", len(years)).Msg("Study years created")
	}

	yearIDByNumber := make(map[int]int64, len(years))
	for _, y := range years {
		yearIDByNumber[y.YearNumber] = y.ID
	}

	// --- Starter units --- //
	units, err := unitRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading existing units")
		finalErr = errors.Join(finalErr, err)
	} else if len(units) == 0 {
		for n := 1; n <= 6; n++ {
			yearID, ok := yearIDByNumber[n]
			if !ok {
				continue
			}
			for _, u := range starterUnits[n] {
				unit := u
				unit.YearID = yearID
				if err := unitRepo.Create(ctx, &unit); err != nil {
					lgr.Error().Err(err).Str("code", unit.Code).Msg("Error creating starter unit")
					finalErr = errors.Join(finalErr, err)
				}
			}
		}
	}

	// --- Baseline lecturers --- //
	lecturers, err := lecturerRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading existing lecturers")
		finalErr = errors.Join(finalErr, err)
	} else if len(lecturers) == 0 {
		for _, l := range starterLecturers {
			lecturer := l
			if err := lecturerRepo.Create(ctx, &lecturer); err != nil {
				lgr.Error().Err(err).Str("name", lecturer.Name).Msg("Error creating lecturer")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	// --- Editor account --- //
	if err := seedAdmin(ctx, adminRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr // Return collected errors, if any
}

// seedAdmin creates the editor account named in the configuration unless it
// already exists. Without a configured password nothing is created.
func seedAdmin(ctx context.Context, adminRepo *appRepos.AdminRepository, cfg *config.Config, lgr zerolog.Logger) error {
	_, err := adminRepo.GetByEmail(ctx, cfg.Admin.Email)
	if err == nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrAdminNotFound) {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	if cfg.Admin.Password == "" {
		lgr.Warn().Str("email", cfg.Admin.Email).Msg("ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	hashedPassword, err := pkgAuth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.AdminUser{
		Email:       cfg.Admin.Email,
		Password:    hashedPassword,
		DisplayName: cfg.Admin.Name,
		IsActive:    true,
	}

	if err := adminRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Str("email", admin.Email).Msg("Default admin user created")
	return nil
}
