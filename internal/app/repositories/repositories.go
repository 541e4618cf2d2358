package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	UniversityRepository *UniversityRepository
	SubjectRepository    *SubjectRepository
	DocumentRepository   *DocumentRepository
	RatingRepository     *RatingRepository
	BookmarkRepository   *BookmarkRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		UniversityRepository: NewUniversityRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		DocumentRepository:   NewDocumentRepository(db),
		RatingRepository:     NewRatingRepository(db),
		BookmarkRepository:   NewBookmarkRepository(db),
	}
}
