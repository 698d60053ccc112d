package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"chimera/internal/narrative/handler/mocks"
	"chimera/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type NarrativeHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestNarrativeHandlerSuite(t *testing.T) {
	suite.Run(t, new(NarrativeHandlerSuite))
}

func (s *NarrativeHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *NarrativeHandlerSuite) TestGenerate() {
	s.Run("defaults verified and score", func() {
		s.service.EXPECT().Generate(gomock.Any(), "Ahmad Razak", true, 12).Return("Profile cleared.")

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/narrative", map[string]any{"name": "  Ahmad Razak "})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[GenerateResponse](s.T(), rr)
		s.Equal("Profile cleared.", resp.Narrative)
	})

	s.Run("passes explicit values", func() {
		s.service.EXPECT().Generate(gomock.Any(), "Lee", false, 40).Return("Failed.")

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/narrative", map[string]any{
			"name": "Lee", "verified": false, "score": 40,
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "narrative", "Failed.")
	})
}

func (s *NarrativeHandlerSuite) TestValidation() {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed body", `{"name":`, "bad_request"},
		{"missing name", `{"score":12}`, "validation_error"},
		{"score out of range", `{"name":"Lee","score":101}`, "validation_error"},
		{"negative score", `{"name":"Lee","score":-1}`, "validation_error"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/narrative", tt.body)
			rr := testutil.DoRequest(s.router, req)
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, tt.code)
		})
	}
}

func TestGenerateRequest_Defaults(t *testing.T) {
	verified, score := false, 0
	req := GenerateRequest{Name: "x", Verified: &verified, Score: &score}
	assert.False(t, req.IsVerified())
	assert.Equal(t, 0, req.RiskScore())

	req = GenerateRequest{Name: "x"}
	assert.True(t, req.IsVerified())
	assert.Equal(t, 12, req.RiskScore())
}
