package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/cache"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/core/services"
)

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWorkspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListUsersByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.UserWorkspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserWorkspace), args.Error(1)
}

func (m *MockWorkspaceRepository) RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

type WorkspaceServiceTestSuite struct {
	suite.Suite
	mockWorkspaceRepo *MockWorkspaceRepository
	mockClientRepo    *MockClientRepository
	mockProjectRepo   *MockProjectRepository
	mockSettingsRepo  *MockSettingsRepository
	cacheSvc          *cache.Service
	service           portssvc.WorkspaceSvcFacade
}

func (suite *WorkspaceServiceTestSuite) SetupTest() {
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.cacheSvc = cache.NewService()
	suite.service = services.NewWorkspaceService(suite.mockWorkspaceRepo, suite.mockClientRepo, suite.mockProjectRepo, suite.mockSettingsRepo, suite.cacheSvc)
}

// cachedOrFail reads a resource from the cache with a fetcher that always
// errors, so it only succeeds on a cache hit.
func (suite *WorkspaceServiceTestSuite) cachedOrFail(resource cache.Resource, workspaceID string) (any, error) {
	return suite.cacheSvc.GetOrFetch(context.Background(), resource, workspaceID, false, func(ctx context.Context) (any, error) {
		return nil, errors.New("not cached")
	})
}

func (suite *WorkspaceServiceTestSuite) TestFindWorkspaceByID_WarmsCollectionCaches() {
	ctx := context.Background()
	workspace := &domain.Workspace{WorkspaceID: "ws1", Name: "Acme Corp", IsActive: true}
	clients := []domain.Client{{ClientID: "c-acme", WorkspaceID: "ws1", Name: "Acme Corp"}}
	projects := []domain.Project{{ProjectID: "p-retainer", WorkspaceID: "ws1", Name: "Retainer"}}
	settings := domain.WorkspaceSettings{domain.SettingCurrency: "EUR"}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, "ws1").Return(workspace, nil).Once()
	suite.mockClientRepo.On("ListClientsByWorkspace", mock.Anything, "ws1").Return(clients, nil).Once()
	suite.mockProjectRepo.On("ListProjectsByWorkspace", mock.Anything, "ws1").Return(projects, nil).Once()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, "ws1").Return(settings, nil).Once()

	got, err := suite.service.FindWorkspaceByID(ctx, "ws1")
	suite.Require().NoError(err)
	suite.Equal("ws1", got.WorkspaceID)

	// The warm-up runs in the background; wait for all three resources to
	// land in the cache, then confirm reads are served without refetching.
	suite.Require().Eventually(func() bool {
		for _, resource := range []cache.Resource{cache.ResourceClients, cache.ResourceProjects, cache.ResourceSettings} {
			if _, err := suite.cachedOrFail(resource, "ws1"); err != nil {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond, "collection caches were not warmed")

	data, err := suite.cachedOrFail(cache.ResourceClients, "ws1")
	suite.Require().NoError(err)
	suite.Equal(clients, data.([]domain.Client))

	data, err = suite.cachedOrFail(cache.ResourceProjects, "ws1")
	suite.Require().NoError(err)
	suite.Equal(projects, data.([]domain.Project))

	data, err = suite.cachedOrFail(cache.ResourceSettings, "ws1")
	suite.Require().NoError(err)
	suite.Equal(settings, data.(domain.WorkspaceSettings))

	suite.mockClientRepo.AssertNumberOfCalls(suite.T(), "ListClientsByWorkspace", 1)
	suite.mockProjectRepo.AssertNumberOfCalls(suite.T(), "ListProjectsByWorkspace", 1)
	suite.mockSettingsRepo.AssertNumberOfCalls(suite.T(), "GetSettings", 1)
}

func (suite *WorkspaceServiceTestSuite) TestFindWorkspaceByID_NotFoundDoesNotWarm() {
	ctx := context.Background()
	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.FindWorkspaceByID(ctx, "missing")
	suite.Require().Error(err)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "ListClientsByWorkspace", mock.Anything, mock.Anything)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "ListProjectsByWorkspace", mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_PreloadsSettings() {
	ctx := context.Background()
	suite.mockWorkspaceRepo.On("SaveWorkspace", ctx, mock.AnythingOfType("domain.Workspace")).Return(nil).Once()
	suite.mockWorkspaceRepo.On("AddUserToWorkspace", ctx, mock.AnythingOfType("domain.UserWorkspace")).Return(nil).Once()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, mock.AnythingOfType("string")).
		Return(domain.WorkspaceSettings{}, nil).Once()

	workspace, err := suite.service.CreateWorkspace(ctx, "Acme Corp", "consulting", "u1")
	suite.Require().NoError(err)

	suite.Require().Eventually(func() bool {
		_, err := suite.cachedOrFail(cache.ResourceSettings, workspace.WorkspaceID)
		return err == nil
	}, time.Second, 10*time.Millisecond, "settings cache was not seeded")
}

func TestWorkspaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}
