package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"instantcredit-backend/internal/adapter/middleware"
	appdomain "instantcredit-backend/internal/domain/application"
	profiledomain "instantcredit-backend/internal/domain/profile"
	"instantcredit-backend/internal/domain/uow"
	userdomain "instantcredit-backend/internal/domain/user"
	"instantcredit-backend/internal/testutil/applicationmock"
	"instantcredit-backend/internal/testutil/profilemock"
	"instantcredit-backend/internal/testutil/uowmock"
	"instantcredit-backend/internal/testutil/usermock"
	appuc "instantcredit-backend/internal/usecase/application"
	authuc "instantcredit-backend/internal/usecase/auth"
	useruc "instantcredit-backend/internal/usecase/user"
)

const (
	testCustomerID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testAdminID    = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testAppID      = "cccccccccccccccccccccccccccccccc"
	testDocID      = "dddddddddddddddddddddddddddddddd"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// asIdentity stands in for the JWT middleware so handler tests control the
// acting identity directly.
func asIdentity(userID, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextUserID, userID)
			c.Set(middleware.ContextRole, role)
			return next(c)
		}
	}
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e := newEcho()
	e.GET("/health", NewHandler().Health)

	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("status field = %v, want ok", body["status"])
	}
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userdomain.User, error) {
			if email != "ana@example.com" {
				return nil, userdomain.ErrNotFound
			}
			return &userdomain.User{
				UserID:       testCustomerID,
				Email:        email,
				PasswordHash: string(hash),
				Role:         userdomain.RoleCustomer,
				IsActive:     true,
			}, nil
		},
	}
	e := newEcho()
	e.POST("/api/auth/login", NewAuthHandler(authuc.NewUsecase(users, []byte("s3cr3t"))).Login)

	t.Run("success", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/auth/login",
			`{"email":"ana@example.com","password":"secret123"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
		}
		var body authuc.TokenDTO
		decodeBody(t, rec, &body)
		if body.Token == "" {
			t.Fatal("expected a token in the response")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/auth/login",
			`{"email":"ana@example.com","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/auth/login",
			`{"email":"ghost@example.com","password":"secret123"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing email rejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/auth/login", `{"password":"secret123"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		var body ErrorResponse
		decodeBody(t, rec, &body)
		if len(body.Details) == 0 {
			t.Fatal("expected field details in validation error")
		}
	})
}

func newApplicationEcho(apps *applicationmock.Repo, profiles *profilemock.Repo, userID, role string) *echo.Echo {
	tx := &uowmock.UoW{Repos: uow.Repos{Applications: apps, Profiles: profiles}}
	h := NewApplicationHandler(appuc.NewUsecase(apps, profiles, tx))

	e := newEcho()
	g := e.Group("/api/applications", asIdentity(userID, role))
	g.POST("", h.Submit)
	g.GET("", h.List)
	g.GET("/:application_id", h.Get)
	g.POST("/:application_id/documents", h.AddDocument)
	return e
}

func TestSubmit_CreatesPendingApplication(t *testing.T) {
	var created *appdomain.CreditApplication
	apps := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *appdomain.CreditApplication) error {
			created = a
			return nil
		},
	}
	e := newApplicationEcho(apps, &profilemock.Repo{}, testCustomerID, "customer")

	rec := doJSON(e, http.MethodPost, "/api/applications", `{
		"application_data": {
			"financials": {"annualIncome": 90000, "totalMonthlyDebt": 1000},
			"creditHistory": {
				"latePayments": 0, "totalCreditLimit": 10000, "utilizedCredit": 2000,
				"years": 8, "hasDiverseCredit": true, "inquiriesLast6Months": 0
			}
		},
		"documents": [{"file_name": "payslip.pdf", "file_path": "/uploads/payslip.pdf"}]
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	var body appuc.ApplicationDTO
	decodeBody(t, rec, &body)
	if body.CustomerID != testCustomerID {
		t.Fatalf("customer id = %q, want identity from token", body.CustomerID)
	}
	if body.Status != "pending" {
		t.Fatalf("status = %q, want pending", body.Status)
	}
	if body.CalculatedScore != 98 || body.RiskAssessment != "low" {
		t.Fatalf("score/risk = %d/%s, want 98/low", body.CalculatedScore, body.RiskAssessment)
	}
	if len(body.Documents) != 1 || !ValidID32(body.Documents[0].DocumentID) {
		t.Fatalf("documents = %+v, want one with generated id", body.Documents)
	}
	if created == nil {
		t.Fatal("repository Create was not called")
	}
}

func TestGetApplication_Ownership(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, applicationID string) (*appdomain.CreditApplication, error) {
			if applicationID != testAppID {
				return nil, appdomain.ErrNotFound
			}
			return &appdomain.CreditApplication{
				ApplicationID: testAppID,
				CustomerID:    testCustomerID,
				Status:        appdomain.StatusPending,
			}, nil
		},
	}

	t.Run("owner sees it", func(t *testing.T) {
		e := newApplicationEcho(apps, &profilemock.Repo{}, testCustomerID, "customer")
		rec := doJSON(e, http.MethodGet, "/api/applications/"+testAppID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("foreign id reads as missing", func(t *testing.T) {
		e := newApplicationEcho(apps, &profilemock.Repo{}, testAdminID, "customer")
		rec := doJSON(e, http.MethodGet, "/api/applications/"+testAppID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("malformed id rejected", func(t *testing.T) {
		e := newApplicationEcho(apps, &profilemock.Repo{}, testCustomerID, "customer")
		rec := doJSON(e, http.MethodGet, "/api/applications/not-an-id", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		e := newApplicationEcho(apps, &profilemock.Repo{}, testCustomerID, "customer")
		rec := doJSON(e, http.MethodGet, "/api/applications/"+strings.Repeat("9", 32), "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func newAdminEcho(apps *applicationmock.Repo, users *usermock.Repo, profiles *profilemock.Repo) *echo.Echo {
	tx := &uowmock.UoW{Repos: uow.Repos{Applications: apps, Users: users, Profiles: profiles}}
	h := NewAdminHandler(
		useruc.NewUsecase(users, tx),
		appuc.NewUsecase(apps, profiles, tx),
	)

	e := newEcho()
	g := e.Group("/api/admin", asIdentity(testAdminID, "admin"))
	g.POST("/users", h.CreateUser)
	g.GET("/users", h.ListUsers)
	g.GET("/users/:user_id", h.GetUser)
	g.PUT("/users/:user_id", h.UpdateUser)
	g.DELETE("/users/:user_id", h.DeleteUser)
	g.GET("/applications/pending", h.ListPendingApplications)
	g.GET("/applications/:application_id", h.GetApplication)
	g.PUT("/applications/:application_id/review", h.ReviewApplication)
	g.PUT("/applications/:application_id/documents/:document_id/verify", h.VerifyDocument)
	return e
}

func pendingApp(version uint64) *appdomain.CreditApplication {
	return &appdomain.CreditApplication{
		ID:            7,
		ApplicationID: testAppID,
		CustomerID:    testCustomerID,
		Status:        appdomain.StatusPending,
		Version:       version,
		Documents: []appdomain.Document{
			{ID: 11, DocumentID: testDocID, ApplicationFK: 7, FileName: "payslip.pdf"},
		},
	}
}

func TestReviewApplication(t *testing.T) {
	t.Run("stamps reviewer from token", func(t *testing.T) {
		current := pendingApp(1)
		var applied appdomain.ReviewUpdate
		apps := &applicationmock.Repo{
			GetByApplicationIDFn: func(ctx context.Context, id string) (*appdomain.CreditApplication, error) {
				return current, nil
			},
			ApplyReviewFn: func(ctx context.Context, id string, upd appdomain.ReviewUpdate) error {
				applied = upd
				current.Status = upd.Status
				current.ReviewedBy = upd.ReviewedBy
				current.AdminComments = upd.AdminComments
				current.Version++
				return nil
			},
		}
		e := newAdminEcho(apps, &usermock.Repo{}, &profilemock.Repo{})

		rec := doJSON(e, http.MethodPut, "/api/admin/applications/"+testAppID+"/review",
			`{"status":"in-review","admin_comments":"checking income docs"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
		}
		if applied.ReviewedBy != testAdminID {
			t.Fatalf("reviewed_by = %q, want acting admin", applied.ReviewedBy)
		}
		if applied.ExpectedVersion != 1 {
			t.Fatalf("expected version = %d, want 1", applied.ExpectedVersion)
		}
		var body appuc.ApplicationDTO
		decodeBody(t, rec, &body)
		if body.Status != "in-review" || body.ReviewedBy != testAdminID {
			t.Fatalf("dto = %s/%s, want in-review/%s", body.Status, body.ReviewedBy, testAdminID)
		}
	})

	t.Run("undeclared status rejected", func(t *testing.T) {
		e := newAdminEcho(&applicationmock.Repo{}, &usermock.Repo{}, &profilemock.Repo{})
		rec := doJSON(e, http.MethodPut, "/api/admin/applications/"+testAppID+"/review",
			`{"status":"escalated"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("lost race surfaces as conflict", func(t *testing.T) {
		apps := &applicationmock.Repo{
			GetByApplicationIDFn: func(ctx context.Context, id string) (*appdomain.CreditApplication, error) {
				return pendingApp(1), nil
			},
			ApplyReviewFn: func(ctx context.Context, id string, upd appdomain.ReviewUpdate) error {
				return appdomain.ErrConflict
			},
		}
		e := newAdminEcho(apps, &usermock.Repo{}, &profilemock.Repo{})
		rec := doJSON(e, http.MethodPut, "/api/admin/applications/"+testAppID+"/review",
			`{"status":"completed"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})
}

func TestVerifyDocument(t *testing.T) {
	t.Run("stamps verifier", func(t *testing.T) {
		var applied appdomain.VerificationUpdate
		apps := &applicationmock.Repo{
			GetByApplicationIDFn: func(ctx context.Context, id string) (*appdomain.CreditApplication, error) {
				return pendingApp(1), nil
			},
			ApplyVerificationFn: func(ctx context.Context, fk uint64, docID string, upd appdomain.VerificationUpdate) error {
				applied = upd
				return nil
			},
		}
		e := newAdminEcho(apps, &usermock.Repo{}, &profilemock.Repo{})

		rec := doJSON(e, http.MethodPut,
			"/api/admin/applications/"+testAppID+"/documents/"+testDocID+"/verify",
			`{"is_verified":true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
		}
		if !applied.IsVerified || applied.VerifiedBy != testAdminID {
			t.Fatalf("applied = %+v, want verified by acting admin", applied)
		}
		var body appuc.DocumentDTO
		decodeBody(t, rec, &body)
		if body.VerifiedAt == nil {
			t.Fatal("verified_at not stamped in response")
		}
	})

	t.Run("missing is_verified rejected", func(t *testing.T) {
		e := newAdminEcho(&applicationmock.Repo{}, &usermock.Repo{}, &profilemock.Repo{})
		rec := doJSON(e, http.MethodPut,
			"/api/admin/applications/"+testAppID+"/documents/"+testDocID+"/verify", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown document", func(t *testing.T) {
		apps := &applicationmock.Repo{
			GetByApplicationIDFn: func(ctx context.Context, id string) (*appdomain.CreditApplication, error) {
				return pendingApp(1), nil
			},
		}
		e := newAdminEcho(apps, &usermock.Repo{}, &profilemock.Repo{})
		rec := doJSON(e, http.MethodPut,
			"/api/admin/applications/"+testAppID+"/documents/"+strings.Repeat("e", 32)+"/verify",
			`{"is_verified":true}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		users := &usermock.Repo{
			CreateFn: func(ctx context.Context, u *userdomain.User) error {
				return userdomain.ErrEmailTaken
			},
		}
		e := newAdminEcho(&applicationmock.Repo{}, users, &profilemock.Repo{})
		rec := doJSON(e, http.MethodPost, "/api/admin/users",
			`{"email":"dup@example.com","password":"secret123"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		e := newAdminEcho(&applicationmock.Repo{}, &usermock.Repo{}, &profilemock.Repo{})
		rec := doJSON(e, http.MethodPost, "/api/admin/users",
			`{"email":"a@example.com","password":"abc"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("creates customer with profile", func(t *testing.T) {
		var createdProfile bool
		profiles := &profilemock.Repo{
			CreateFn: func(ctx context.Context, p *profiledomain.CustomerProfile) error {
				createdProfile = true
				return nil
			},
		}
		e := newAdminEcho(&applicationmock.Repo{}, &usermock.Repo{}, profiles)
		rec := doJSON(e, http.MethodPost, "/api/admin/users",
			`{"email":"new@example.com","password":"secret123","first_name":"Ana"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
		}
		var body useruc.UserDTO
		decodeBody(t, rec, &body)
		if body.Role != "customer" || !ValidID32(body.UserID) {
			t.Fatalf("dto = %+v, want defaulted customer role and generated id", body)
		}
		if !createdProfile {
			t.Fatal("customer profile was not provisioned")
		}
	})
}

func TestDeleteUser_Cascades(t *testing.T) {
	var deletedApps, deletedProfile, deletedUser bool
	users := &usermock.Repo{
		GetByUserIDFn: func(ctx context.Context, id string) (*userdomain.User, error) {
			return &userdomain.User{UserID: id, Role: userdomain.RoleCustomer}, nil
		},
		DeleteFn: func(ctx context.Context, id string) error { deletedUser = true; return nil },
	}
	apps := &applicationmock.Repo{
		DeleteByCustomerIDFn: func(ctx context.Context, id string) error { deletedApps = true; return nil },
	}
	profiles := &profilemock.Repo{
		DeleteByUserIDFn: func(ctx context.Context, id string) error { deletedProfile = true; return nil },
	}
	e := newAdminEcho(apps, users, profiles)

	rec := doJSON(e, http.MethodDelete, "/api/admin/users/"+testCustomerID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (%s)", rec.Code, rec.Body.String())
	}
	if !deletedApps || !deletedProfile || !deletedUser {
		t.Fatalf("cascade incomplete: apps=%v profile=%v user=%v", deletedApps, deletedProfile, deletedUser)
	}
}
