package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"

	"github.com/Yeralkhan06/MyProfile3/adapters/event"
	pdfAdapter "github.com/Yeralkhan06/MyProfile3/adapters/pdf"
	authUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/auth"
	githubUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/github"
	profileUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/profile"
	resumeUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/resume"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/github"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile/profiletest"
	"github.com/Yeralkhan06/MyProfile3/pkg/auth"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

type routerOptions struct {
	source  github.RepoSource
	withJWT bool
}

func newTestRouter(repo profile.Repository, opts routerOptions) (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	if opts.source == nil {
		opts.source = stubRepoSource{}
	}

	deps := RouterDeps{
		Logger:         log,
		ProfileHandler: NewProfileHandler(profileUC.NewProfileUseCase(repo, event.NoopPublisher{}, log), log),
		GitHubHandler:  NewGitHubHandler(githubUC.NewListReposUseCase(opts.source)),
		ResumeHandler: NewResumeHandler(resumeUC.NewResumeUseCase(
			repo, pdfAdapter.NewFPDFRenderer("", log), nil, language.Russian, log)),
	}

	var jwtSvc *auth.JWTService
	if opts.withJWT {
		jwtSvc = auth.NewJWTService("test-secret", time.Hour)
		hash, err := auth.HashPassword("owner-pass")
		if err != nil {
			panic(err)
		}
		deps.JWTService = jwtSvc
		deps.AuthHandler = NewAuthHandler(authUC.NewLoginUseCase(authUC.Owner{Email: "owner@example.com", PasswordHash: hash}, jwtSvc, log), log)
	}
	return NewRouter(deps), jwtSvc
}

type ProfileHandlerTestSuite struct {
	suite.Suite
	repo   *profiletest.Repository
	router *gin.Engine
}

func (s *ProfileHandlerTestSuite) SetupTest() {
	s.repo = profiletest.New(profiletest.Seed())
	s.router, _ = newTestRouter(s.repo, routerOptions{})
}

func TestProfileHandler(t *testing.T) {
	suite.Run(t, new(ProfileHandlerTestSuite))
}

func (s *ProfileHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		s.Require().NoError(json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *ProfileHandlerTestSuite) getProfile() map[string]any {
	rr := s.do(http.MethodGet, "/api/profile", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func basePayload() map[string]any {
	return map[string]any{
		"first_name": "Мақсұт",
		"last_name":  "Ералхан",
		"email":      "yeralkhan@example.com",
	}
}

func (s *ProfileHandlerTestSuite) Test_GetProfile_Shape() {
	out := s.getProfile()

	s.Equal(float64(1), out["id"])
	s.Equal("Мақсұт", out["first_name"])
	s.Contains(out, "middle_name")
	s.Nil(out["middle_name"])
	s.Nil(out["phone"])

	skills := out["skills"].([]any)
	s.Require().Len(skills, 2)
	s.Equal(map[string]any{"skill_name": "Верстка сайтов", "skill_level": float64(85), "category": "Frontend"}, skills[0])

	exp := out["experience"].([]any)[0].(map[string]any)
	s.Nil(exp["end_date"], "ongoing job must be null, not the string \"null\"")
	s.Contains(exp, "end_date")
	s.Equal([]any{"React", "Node.js", "PostgreSQL", "AWS"}, exp["technologies"])
}

func (s *ProfileHandlerTestSuite) Test_GetProfile_EmptyCollectionsAreArrays() {
	p := profiletest.Seed()
	p.Skills, p.Experience, p.Education, p.Projects = nil, nil, nil, nil
	s.repo = profiletest.New(p)
	s.router, _ = newTestRouter(s.repo, routerOptions{})

	rr := s.do(http.MethodGet, "/api/profile", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	body := rr.Body.String()
	for _, key := range []string{`"skills":[]`, `"experience":[]`, `"education":[]`, `"projects":[]`} {
		s.Contains(body, key)
	}
}

func (s *ProfileHandlerTestSuite) Test_GetProfile_NotFound() {
	s.router, _ = newTestRouter(profiletest.New(nil), routerOptions{})

	rr := s.do(http.MethodGet, "/api/profile", nil)
	s.Equal(http.StatusNotFound, rr.Code)
	s.Contains(rr.Body.String(), `"error":"not found"`)
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_ValidationRejectsWholeRequest() {
	before := s.getProfile()

	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"blank last name", func(m map[string]any) { m["last_name"] = "   " }, "last_name"},
		{"missing first name", func(m map[string]any) { delete(m, "first_name") }, "first_name"},
		{"bad email", func(m map[string]any) { m["email"] = "not-an-email" }, "email"},
		{"skill without name", func(m map[string]any) {
			m["skills"] = []any{map[string]any{"skill_name": "Go"}, map[string]any{"skill_level": 10}}
		}, "skills[1].skill_name"},
		{"experience without start", func(m map[string]any) {
			m["experience"] = []any{map[string]any{"company_name": "A", "position": "Dev"}}
		}, "experience[0].start_date"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			payload := basePayload()
			payload["bio"] = "changed"
			tt.mutate(payload)

			rr := s.do(http.MethodPut, "/api/profile", payload)
			s.Equal(http.StatusBadRequest, rr.Code)

			var body struct {
				Error   string `json:"error"`
				Message string `json:"message"`
				Errors  []struct {
					Field   string `json:"field"`
					Message string `json:"message"`
				} `json:"errors"`
			}
			s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &body))
			s.Equal("invalid input", body.Error)
			s.Equal("Validation failed", body.Message)
			s.Require().NotEmpty(body.Errors)
			s.Equal(tt.field, body.Errors[0].Field)
		})
	}

	s.Equal(before, s.getProfile())
	s.Zero(s.repo.Applies)
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_MalformedJSON() {
	rr := s.do(http.MethodPut, "/api/profile", `{"first_name": "a",`)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(rr.Body.String(), `"error":"invalid input"`)
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_TrailingDataRejected() {
	for _, body := range []string{
		`{"first_name":"a","last_name":"b","email":"a@b.co"} trailing garbage`,
		`{"first_name":"a","last_name":"b","email":"a@b.co"}{"first_name":"c"}`,
	} {
		rr := s.do(http.MethodPut, "/api/profile", body)
		s.Equal(http.StatusBadRequest, rr.Code, body)
		s.Contains(rr.Body.String(), `"error":"invalid input"`)
	}
	s.Zero(s.repo.Applies)

	rr := s.do(http.MethodPut, "/api/profile", `{"first_name":"a","last_name":"b","email":"a@b.co"}`+"\n\t ")
	s.Equal(http.StatusOK, rr.Code)
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_NormalizesEmailAndNames() {
	payload := basePayload()
	payload["first_name"] = "  Иван "
	payload["email"] = "  Ivan.Petrov@Example.COM "
	payload["phone"] = "   "

	rr := s.do(http.MethodPut, "/api/profile", payload)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"message":"Profile updated successfully"}`, rr.Body.String())

	out := s.getProfile()
	s.Equal("Иван", out["first_name"])
	s.Equal("ivan.petrov@example.com", out["email"])
	s.Nil(out["phone"])
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_EmptyVersusOmitted() {
	payload := basePayload()
	payload["skills"] = []any{}
	payload["education"] = nil

	rr := s.do(http.MethodPut, "/api/profile", payload)
	s.Require().Equal(http.StatusOK, rr.Code)

	out := s.getProfile()
	s.Empty(out["skills"])
	s.Len(out["experience"], 1)
	s.Len(out["education"], 1)
	s.Len(out["projects"], 1)
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_RoundTripKeepsOrder() {
	payload := basePayload()
	payload["experience"] = []any{
		map[string]any{"company_name": "Second", "position": "Dev", "start_date": "2019-01-01", "end_date": "2020-01-01",
			"technologies": []string{"Go", "Kafka", "Redis"}},
		map[string]any{"company_name": "First", "position": "Lead", "start_date": "2021-01-01", "end_date": ""},
	}
	payload["projects"] = []any{
		map[string]any{"project_name": "B"},
		map[string]any{"project_name": "A", "technologies": []string{"z", "a"}},
	}

	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, "/api/profile", payload).Code)

	out := s.getProfile()
	exp := out["experience"].([]any)
	s.Require().Len(exp, 2)
	first, second := exp[0].(map[string]any), exp[1].(map[string]any)
	s.Equal("Second", first["company_name"])
	s.Equal([]any{"Go", "Kafka", "Redis"}, first["technologies"])
	s.Equal("First", second["company_name"])
	s.Nil(second["end_date"])
	s.Equal([]any{}, second["technologies"])

	projects := out["projects"].([]any)
	s.Equal("B", projects[0].(map[string]any)["project_name"])
	s.Equal([]any{"z", "a"}, projects[1].(map[string]any)["technologies"])
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_Idempotent() {
	payload := basePayload()
	payload["skills"] = []any{map[string]any{"skill_name": "Go", "skill_level": 90}}

	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, "/api/profile", payload).Code)
	first := s.getProfile()
	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, "/api/profile", payload).Code)
	second := s.getProfile()

	delete(first, "updated_at")
	delete(second, "updated_at")
	s.Equal(first, second)
	s.Len(second["skills"], 1)
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_StorageFailureAppliesNothing() {
	s.repo.FailOn = profile.CollectionProjects
	before := s.getProfile()

	payload := basePayload()
	payload["first_name"] = "Changed"
	payload["skills"] = []any{}
	payload["projects"] = []any{}

	rr := s.do(http.MethodPut, "/api/profile", payload)
	s.Equal(http.StatusInternalServerError, rr.Code)
	s.NotContains(rr.Body.String(), "injected", "causes stay in the logs")

	s.Equal(before, s.getProfile())
}

func (s *ProfileHandlerTestSuite) Test_UpdateProfile_NotFound() {
	s.router, _ = newTestRouter(profiletest.New(nil), routerOptions{})

	rr := s.do(http.MethodPut, "/api/profile", basePayload())
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *ProfileHandlerTestSuite) Test_Health_And_CorrelationID() {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(HeaderCorrelationID, "abc-123")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"UP"}`, rr.Body.String())
	s.Equal("abc-123", rr.Header().Get(HeaderCorrelationID))

	rr = s.do(http.MethodGet, "/api/health", nil)
	s.NotEmpty(rr.Header().Get(HeaderCorrelationID))
}

func (s *ProfileHandlerTestSuite) Test_Metrics() {
	s.do(http.MethodGet, "/api/health", nil)

	rr := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "myprofile_http_requests_total")
}

func TestUpdateProfileRequiresTokenWhenAuthConfigured(t *testing.T) {
	router, _ := newTestRouter(profiletest.New(profiletest.Seed()), routerOptions{withJWT: true})

	put := func(token string) int {
		body, _ := json.Marshal(basePayload())
		req := httptest.NewRequest(http.MethodPut, "/api/profile", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := put(""); code != http.StatusUnauthorized {
		t.Fatalf("PUT without token: got %d, want 401", code)
	}
	if code := put("garbage"); code != http.StatusUnauthorized {
		t.Fatalf("PUT with bad token: got %d, want 401", code)
	}

	body, _ := json.Marshal(map[string]string{"email": "owner@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("login with wrong password: got %d, want 401", rr.Code)
	}

	body, _ = json.Marshal(map[string]string{"email": "owner@example.com", "password": "owner-pass"})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: got %d, want 200", rr.Code)
	}
	var login map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &login); err != nil {
		t.Fatal(err)
	}

	if code := put(login["access_token"]); code != http.StatusOK {
		t.Fatalf("PUT with token: got %d, want 200", code)
	}
}

func TestLoginRouteAbsentWithoutAuth(t *testing.T) {
	router, _ := newTestRouter(profiletest.New(profiletest.Seed()), routerOptions{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}
