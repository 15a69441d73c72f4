package service

// Unit tests covering invariants, error propagation, and load-dispatch
// boundaries via mocks. Full transition-table behavior is exercised against
// real in-memory collaborators in scenarios_test.go.

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"consentgate/internal/consent/models"
	"consentgate/internal/consent/service/mocks"
	"consentgate/internal/resource"
	dErrors "consentgate/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockStore   *mocks.MockDecisionStore
	mockSession *mocks.MockSessionFlag
	mockLoader  *mocks.MockLoader
	service     *Service
}

func suiteCatalog(t require.TestingT) *resource.Catalog {
	catalog, err := resource.NewCatalog([]resource.Descriptor{
		{Identifier: "/js/app.js", Category: models.CategoryEssential, Kind: resource.KindScript},
		{Identifier: "https://cdn.example.com/analytics.js", Category: models.CategoryAnalytics, Kind: resource.KindScript},
		{Identifier: "https://cdn.example.com/pixel.js", Category: models.CategoryMarketing, Kind: resource.KindScript},
	})
	require.NoError(t, err)
	return catalog
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockDecisionStore(s.ctrl)
	s.mockSession = mocks.NewMockSessionFlag(s.ctrl)
	s.mockLoader = mocks.NewMockLoader(s.ctrl)
	s.service = NewService(
		suiteCatalog(s.T()),
		s.mockLoader,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestUpdateRejectsNonPersistableDecisions() {
	for _, decision := range []models.Decision{models.DecisionUnset, "maybe", ""} {
		_, err := s.service.Update(context.Background(), s.mockStore, decision)
		s.Require().Error(err)
		s.Assert().True(dErrors.HasCode(err, dErrors.CodeBadRequest), "expected CodeBadRequest for %q", decision)
	}
}

func (s *ServiceSuite) TestUpdateStoreErrorPropagation() {
	s.mockStore.EXPECT().
		SetDecision(gomock.Any(), models.DecisionAccepted).
		Return(nil, assert.AnError)

	_, err := s.service.Update(context.Background(), s.mockStore, models.DecisionAccepted)
	s.Require().Error(err)
	s.Assert().True(dErrors.HasCode(err, dErrors.CodeInternal), "expected CodeInternal for store write error")
}

func (s *ServiceSuite) TestResetStoreErrorPropagation() {
	s.mockStore.EXPECT().Clear(gomock.Any()).Return(assert.AnError)

	_, err := s.service.Reset(context.Background(), s.mockStore, s.mockSession)
	s.Require().Error(err)
	s.Assert().True(dErrors.HasCode(err, dErrors.CodeInternal), "expected CodeInternal for store erase error")
}

// TestEvaluateDispatchesOnlyPermittedLoads pins the gating boundary: with no
// decision, only essential descriptors may reach the loader.
func (s *ServiceSuite) TestEvaluateDispatchesOnlyPermittedLoads() {
	s.mockStore.EXPECT().Decision(gomock.Any()).Return(models.DecisionUnset)
	s.mockSession.EXPECT().Seen().Return(true)
	s.mockLoader.EXPECT().
		Request(gomock.Any(), gomock.Cond(func(d resource.Descriptor) bool {
			return d.Identifier == "/js/app.js"
		})).
		Return(true)

	view := s.service.Evaluate(context.Background(), s.mockStore, s.mockSession, EvaluateOptions{})
	s.Assert().False(view.ShowBanner)
	s.Assert().Len(view.Withheld, 2)
}

// TestUpdateAcceptDispatchesEverythingInCatalogOrder pins load ordering
// within one pass.
func (s *ServiceSuite) TestUpdateAcceptDispatchesEverythingInCatalogOrder() {
	record := &models.Record{Status: models.DecisionAccepted}
	s.mockStore.EXPECT().
		SetDecision(gomock.Any(), models.DecisionAccepted).
		Return(record, nil)

	first := s.mockLoader.EXPECT().
		Request(gomock.Any(), gomock.Cond(func(d resource.Descriptor) bool { return d.Identifier == "/js/app.js" })).
		Return(true)
	second := s.mockLoader.EXPECT().
		Request(gomock.Any(), gomock.Cond(func(d resource.Descriptor) bool { return d.Identifier == "https://cdn.example.com/analytics.js" })).
		Return(true).
		After(first)
	s.mockLoader.EXPECT().
		Request(gomock.Any(), gomock.Cond(func(d resource.Descriptor) bool { return d.Identifier == "https://cdn.example.com/pixel.js" })).
		Return(true).
		After(second)

	view, err := s.service.Update(context.Background(), s.mockStore, models.DecisionAccepted)
	s.Require().NoError(err)
	s.Assert().Equal(models.DecisionAccepted, view.Decision)
	s.Assert().False(view.ShowBanner)
	s.Assert().Empty(view.Withheld)
}

func (s *ServiceSuite) TestBotEvaluationLeavesSessionUntouched() {
	s.mockStore.EXPECT().Decision(gomock.Any()).Return(models.DecisionUnset)
	// No Seen/MarkSeen expectations: a bot request must not touch the flag.
	s.mockLoader.EXPECT().Request(gomock.Any(), gomock.Any()).Return(true)

	view := s.service.Evaluate(context.Background(), s.mockStore, s.mockSession, EvaluateOptions{SuppressBanner: true})
	s.Assert().False(view.ShowBanner)
}
