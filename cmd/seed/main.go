package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"instantcredit-backend/internal/config"
	appdomain "instantcredit-backend/internal/domain/application"
	"instantcredit-backend/internal/domain/profile"
	userdomain "instantcredit-backend/internal/domain/user"
	"instantcredit-backend/internal/infrastructure/db"
	"instantcredit-backend/internal/usecase/auth"
	"instantcredit-backend/pkg/id"
)

// seedRow is one line of the bank admin report export.
type seedRow struct {
	CustomerID    string
	ApplicantName string
	CreditScore   int
	LoanType      string
}

func main() {
	_ = godotenv.Load()

	csvPath := flag.String("csv", "bank_admin_report_50.csv", "path to the bank admin report export")
	flag.Parse()

	cfg := config.Load()
	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rows, err := readReport(*csvPath)
	if err != nil {
		log.Fatalf("read %s: %v", *csvPath, err)
	}
	log.Printf("parsed %d rows from %s", len(rows), *csvPath)

	if err := seed(gormDB, rows); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("database seeding complete")
}

func readReport(path string) ([]seedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Customer_ID", "Applicant_Name", "Credit_Score", "Loan_Type"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var rows []seedRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		customerID := strings.TrimSpace(rec[col["Customer_ID"]])
		if customerID == "" {
			continue
		}
		rawScore := strings.TrimSpace(rec[col["Credit_Score"]])
		score, err := strconv.Atoi(rawScore)
		if err != nil {
			log.Printf("skipping row for %s: bad Credit_Score %q", customerID, rawScore)
			continue
		}
		rows = append(rows, seedRow{
			CustomerID:    customerID,
			ApplicantName: strings.TrimSpace(rec[col["Applicant_Name"]]),
			CreditScore:   score,
			LoanType:      strings.TrimSpace(rec[col["Loan_Type"]]),
		})
	}
	return rows, nil
}

// seed replaces all existing data with the report's customers and their
// completed applications. One user per distinct Customer_ID; applications
// link through the generated public user id.
func seed(gormDB *gorm.DB, rows []seedRow) error {
	return gormDB.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&appdomain.Document{}, &appdomain.CreditApplication{},
			&profile.CustomerProfile{}, &userdomain.User{},
		} {
			if err := wipe.Delete(model).Error; err != nil {
				return err
			}
		}

		hash, err := auth.HashPassword("password123")
		if err != nil {
			return err
		}

		userIDs := map[string]string{} // report customer id -> generated public id
		for _, row := range rows {
			if _, ok := userIDs[row.CustomerID]; ok {
				continue
			}
			first, last := splitName(row.ApplicantName)
			usr := &userdomain.User{
				UserID:          id.NewID32(),
				Email:           row.CustomerID + "@example.com",
				PasswordHash:    hash,
				Role:            userdomain.RoleCustomer,
				FirstName:       first,
				LastName:        last,
				IsEmailVerified: true,
				IsActive:        true,
			}
			if err := tx.Create(usr).Error; err != nil {
				return fmt.Errorf("create user %s: %w", usr.Email, err)
			}
			prof := &profile.CustomerProfile{
				UserID:      usr.UserID,
				CreditScore: row.CreditScore,
				RiskLevel:   bureauRisk(row.CreditScore),
			}
			if err := tx.Create(prof).Error; err != nil {
				return err
			}
			userIDs[row.CustomerID] = usr.UserID
			log.Printf("user created: %s", usr.Email)
		}

		for _, row := range rows {
			app := &appdomain.CreditApplication{
				ApplicationID:   id.NewID32(),
				CustomerID:      userIDs[row.CustomerID],
				ApplicationData: appdomain.ApplicationData{LoanType: row.LoanType},
				CalculatedScore: row.CreditScore,
				RiskAssessment:  bureauRisk(row.CreditScore),
				Status:          appdomain.StatusCompleted,
				Version:         1,
			}
			if err := tx.Create(app).Error; err != nil {
				return fmt.Errorf("create application for %s: %w", row.CustomerID, err)
			}
		}
		return nil
	})
}

// bureauRisk classifies report scores, which are on the 300-850 bureau scale
// rather than the engine's 0-100 scale.
func bureauRisk(score int) appdomain.RiskLevel {
	switch {
	case score > 720:
		return appdomain.RiskLow
	case score > 650:
		return appdomain.RiskMedium
	default:
		return appdomain.RiskHigh
	}
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "Unknown", "User"
	case 1:
		return parts[0], "User"
	default:
		return parts[0], parts[1]
	}
}
