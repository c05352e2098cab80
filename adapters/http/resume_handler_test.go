package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile/profiletest"
)

func TestDownloadResumePDF(t *testing.T) {
	seed := profiletest.Seed()
	seed.Fields.FirstName = "Ivan"
	seed.Fields.LastName = "Petrov"
	router, _ := newTestRouter(profiletest.New(seed), routerOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/resume/pdf", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Ivan_Petrov_resume.pdf`, rr.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestDownloadResumePDFNonASCIIName(t *testing.T) {
	router, _ := newTestRouter(profiletest.New(profiletest.Seed()), routerOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/resume/pdf", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "filename*=utf-8''")
}

func TestDownloadResumePDFWithoutExperience(t *testing.T) {
	seed := profiletest.Seed()
	seed.Experience = []profile.Experience{}
	router, _ := newTestRouter(profiletest.New(seed), routerOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/resume/pdf", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDownloadResumePDFMissingProfile(t *testing.T) {
	router, _ := newTestRouter(profiletest.New(nil), routerOptions{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/resume/pdf", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
