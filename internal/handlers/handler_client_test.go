package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
	"github.com/timekeep-hq/timekeep_app/internal/middleware"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, userID, workspaceID string, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, userID, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) GetClient(ctx context.Context, userID, workspaceID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, userID, workspaceID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.Client, error) {
	args := m.Called(ctx, userID, workspaceID, forceRefresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) UpdateClient(ctx context.Context, userID, workspaceID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, userID, workspaceID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) DeleteClient(ctx context.Context, userID, workspaceID, clientID string) error {
	args := m.Called(ctx, userID, workspaceID, clientID)
	return args.Error(0)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

type ClientHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockClientService *MockClientService
	jwtSecret         string
}

func (suite *ClientHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockClientService = new(MockClientService)

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	scoped := suite.router.Group("/api/v1/workspaces/:workspace_id")
	registerClientRoutes(scoped, suite.mockClientService)
}

func (suite *ClientHandlerTestSuite) bearerToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return "Bearer " + signed
}

func (suite *ClientHandlerTestSuite) do(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ClientHandlerTestSuite) TestListClients_Success() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()
	expected := []domain.Client{
		{ClientID: uuid.NewString(), WorkspaceID: workspaceID, Name: "Acme Corp", Status: domain.ClientActive},
		{ClientID: uuid.NewString(), WorkspaceID: workspaceID, Name: "Globex", Status: domain.ClientProspect},
	}
	suite.mockClientService.On("ListClients", mock.Anything, userID, workspaceID, false).
		Return(expected, nil).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/clients", workspaceID), suite.bearerToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.ClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 2)
	suite.Equal(expected[0].ClientID, body[0].ClientID)
	suite.Equal("Globex", body[1].Name)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestListClients_ForceRefreshQueryBypassesCache() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()
	suite.mockClientService.On("ListClients", mock.Anything, userID, workspaceID, true).
		Return([]domain.Client{}, nil).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/clients?forceRefresh=true", workspaceID), suite.bearerToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestCreateClient_Success() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()
	req := dto.CreateClientRequest{Name: "Acme Corp", ContactEmail: "bill@acme.test", Status: domain.ClientActive}
	created := &domain.Client{ClientID: uuid.NewString(), WorkspaceID: workspaceID, Name: "Acme Corp", ContactEmail: "bill@acme.test", Status: domain.ClientActive}
	suite.mockClientService.On("CreateClient", mock.Anything, userID, workspaceID, req).
		Return(created, nil).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/workspaces/%s/clients", workspaceID), suite.bearerToken(userID), req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.ClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(created.ClientID, body.ClientID)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestCreateClient_MissingNameRejected() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/workspaces/%s/clients", workspaceID), suite.bearerToken(userID), map[string]string{"contactName": "Bill"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClientService.AssertNotCalled(suite.T(), "CreateClient", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClientHandlerTestSuite) TestGetClient_NotFound() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()
	clientID := uuid.NewString()
	suite.mockClientService.On("GetClient", mock.Anything, userID, workspaceID, clientID).
		Return(nil, apperrors.NewNotFoundError("client not found")).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/clients/%s", workspaceID, clientID), suite.bearerToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ClientHandlerTestSuite) TestListClients_ForbiddenMembership() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()
	suite.mockClientService.On("ListClients", mock.Anything, userID, workspaceID, false).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/clients", workspaceID), suite.bearerToken(userID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ClientHandlerTestSuite) TestListClients_MissingTokenUnauthorized() {
	workspaceID := uuid.NewString()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/workspaces/%s/clients", workspaceID), "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockClientService.AssertNotCalled(suite.T(), "ListClients", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClientHandlerTestSuite) TestDeleteClient_NoContent() {
	workspaceID := uuid.NewString()
	userID := uuid.NewString()
	clientID := uuid.NewString()
	suite.mockClientService.On("DeleteClient", mock.Anything, userID, workspaceID, clientID).
		Return(nil).Once()

	w := suite.do(http.MethodDelete, fmt.Sprintf("/api/v1/workspaces/%s/clients/%s", workspaceID, clientID), suite.bearerToken(userID), nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockClientService.AssertExpectations(suite.T())
}

func TestClientHandler(t *testing.T) {
	suite.Run(t, new(ClientHandlerTestSuite))
}
