package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/trungle/unidocs/internal/app/models"
	appRepos "github.com/trungle/unidocs/internal/app/repositories"
	"golang.org/x/crypto/bcrypt"
)

// CreateDefaultData seeds a default admin account and a starter reference
// catalog when the tables are empty. Errors are joined and returned so startup
// can log them without aborting.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	universityRepo := appRepos.NewUniversityRepository(dbPool)
	subjectRepo := appRepos.NewSubjectRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	adminEmail := "admin@unidocs.local"
	exists, err := userRepo.UserExistsByEmail(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, hashErr)
		} else {
			admin := &appModels.User{
				Email:        adminEmail,
				FirstName:    "Portal",
				LastName:     "Admin",
				PasswordHash: string(hash),
				RoleType:     appModels.RoleAdmin,
			}
			if _, createErr := userRepo.CreateUser(ctx, admin); createErr != nil {
				lgr.Error().Err(createErr).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, createErr)
			} else {
				lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
			}
		}
	}

	// --- Starter universities and subjects --- //
	existing, err := universityRepo.GetAllUniversities(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing universities during seeding")
		return errors.Join(finalErr, err)
	}
	if len(existing) > 0 {
		return finalErr
	}

	type seedSubject struct {
		name string
		code string
	}
	seedData := []struct {
		name     string
		code     string
		subjects []seedSubject
	}{
		{
			name: "National University", code: "NU",
			subjects: []seedSubject{
				{"Computer Science", "CS"},
				{"Mathematics", "MATH"},
			},
		},
		{
			name: "Technical University", code: "TU",
			subjects: []seedSubject{
				{"Software Engineering", "SE"},
				{"Electrical Engineering", "EE"},
			},
		},
	}

	for _, entry := range seedData {
		university := &appModels.University{Name: entry.name, Code: entry.code}
		universityID, createErr := universityRepo.CreateUniversity(ctx, university)
		if createErr != nil {
			lgr.Error().Err(createErr).Str("code", entry.code).Msg("Error creating default university")
			finalErr = errors.Join(finalErr, createErr)
			continue
		}
		for _, subj := range entry.subjects {
			subject := &appModels.Subject{Name: subj.name, Code: subj.code, UniversityID: universityID}
			if _, subjErr := subjectRepo.CreateSubject(ctx, subject); subjErr != nil {
				lgr.Error().Err(subjErr).Str("code", subj.code).Msg("Error creating default subject")
				finalErr = errors.Join(finalErr, subjErr)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data ready")
	}
	return finalErr
}
