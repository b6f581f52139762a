package database

import (
	"context"

	"gorm.io/gorm"
)

// Database is the persistence handle shared by the services. It is built once
// at startup and passed in explicitly.
type Database struct {
	statements

	adminRepo     *AdminRepo
	profileRepo   *ProfileRepo
	projectRepo   *ProjectRepo
	techStackRepo *TechStackRepo
	skillRepo     *SkillRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return newDatabase(db, dialectOf(db), false)
}

func newDatabase(db *gorm.DB, dialect Dialect, inTx bool) Database {
	stmts := statements{db: db, dialect: dialect, inTx: inTx, returning: dialect.SupportsReturning()}
	return Database{
		statements:    stmts,
		adminRepo:     NewAdminRepo(db),
		profileRepo:   NewProfileRepo(db),
		projectRepo:   NewProjectRepo(db),
		techStackRepo: NewTechStackRepo(stmts),
		skillRepo:     NewSkillRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TechStackRepo() *TechStackRepo {
	return d.techStackRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) Dialect() Dialect {
	return d.dialect
}

// Transaction runs fn inside a transaction. Every repository and statement
// reached through the Database handed to fn runs on that transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newDatabase(tx, d.dialect, true))
	})
}

func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
