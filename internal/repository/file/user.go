package file

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"prompt-app/internal/logger"
	"prompt-app/internal/repository/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var usersHeader = []string{"username", "email", "password_hash", "registration_date"}

// GetUserByUsername retrieves a user from the users CSV file
func (f *FileStore) GetUserByUsername(username string) (*store.User, error) {
	rows, err := f.readUserRows()
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row[0] == username {
			return &store.User{
				Username:     row[0],
				Email:        row[1],
				PasswordHash: row[2],
				CreatedAt:    row[3],
			}, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// CreateUser appends a new user with a bcrypt-hashed password
func (f *FileStore) CreateUser(username, email, password string) (*store.User, error) {
	existing, err := f.GetUserByUsername(username)
	if err != nil && err != store.ErrUserNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, store.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	createdAt := time.Now().Format(store.TimestampLayout)
	if err := appendCSV(f.usersFile, usersHeader, []string{username, email, string(hashedPassword), createdAt}); err != nil {
		return nil, fmt.Errorf("error saving user: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"username": username}).Info("Created new user")

	return &store.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    createdAt,
	}, nil
}

// readUserRows returns all data rows of the users file, without the header.
// A missing file means no registered users yet.
func (f *FileStore) readUserRows() ([][]string, error) {
	rows, err := readCSVRows(f.usersFile, len(usersHeader))
	if err != nil {
		return nil, fmt.Errorf("error reading users file: %w", err)
	}
	return rows, nil
}

// SeedDemoUser creates the demo user if it doesn't exist
func SeedDemoUser(s store.Store) error {
	_, err := s.GetUserByUsername("demo")
	if err == nil {
		logger.Log.Info("Demo user already exists, skipping seed")
		return nil
	}

	_, err = s.CreateUser("demo", "demo@example.com", "demo123")
	if err != nil && err != store.ErrUserExists {
		return fmt.Errorf("error seeding demo user: %w", err)
	}

	logger.Log.Info("Demo user seeded successfully")
	return nil
}

// CSV helpers shared by the user store and the activity log

// readCSVRows reads all data rows of a headered CSV file. Rows with an
// unexpected field count are skipped with a warning.
func readCSVRows(path string, fields int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for i, row := range all {
		if i == 0 {
			continue // header
		}
		if len(row) != fields {
			logger.Log.WithFields(logrus.Fields{"file": path, "line": i + 1}).Warn("Skipping malformed CSV row")
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// appendCSV appends one row to a headered CSV file, creating the file with
// its header first if needed.
func appendCSV(path string, header, row []string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		writer := csv.NewWriter(file)
		if err := writer.Write(header); err != nil {
			file.Close()
			return err
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(row); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
