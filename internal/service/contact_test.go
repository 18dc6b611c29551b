package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	cacheMocks "github.com/umalmyha/contacts/internal/cache/mocks"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/repository"
	rpsMocks "github.com/umalmyha/contacts/internal/repository/mocks"
)

type contactTestData struct {
	ctx     context.Context
	contact *model.Contact
}

type contactServiceTestSuite struct {
	suite.Suite
	contactSvc       ContactService
	contactRpsMock   *rpsMocks.ContactRepository
	contactCacheMock *cacheMocks.ContactCacheRepository
	testData         *contactTestData
}

func (s *contactServiceTestSuite) SetupSuite() {
	s.testData = &contactTestData{
		ctx: context.Background(),
		contact: &model.Contact{
			ID:        "ecc770d9-4576-4f72-affa-8b1454246692",
			Name:      "John Walls",
			Company:   "Acme Corp",
			Email:     "john.walls@somemal.com",
			Phone:     "555-0101",
			Status:    model.StatusInterested,
			CreatedAt: time.Date(2022, time.July, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func (s *contactServiceTestSuite) SetupTest() {
	t := s.T()
	s.contactRpsMock = rpsMocks.NewContactRepository(t)
	s.contactCacheMock = cacheMocks.NewContactCacheRepository(t)
	s.contactSvc = NewContactService(s.contactRpsMock, s.contactCacheMock)
}

func (s *contactServiceTestSuite) TestCreateAssignsGeneratedFields() {
	ctx := s.testData.ctx

	s.contactRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Contact")).Return(nil).Once()

	s.T().Log("contact is created with id, creation time and default status assigned")
	{
		c, err := s.contactSvc.Create(ctx, model.NewContact{Name: "Jane Doe", Email: "jane@x.com"})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotEmpty(c.ID, "id must be assigned")
		s.Assert().False(c.CreatedAt.IsZero(), "creation time must be assigned")
		s.Assert().Equal(model.StatusInterested, c.Status, "default status must be applied")
	}
}

func (s *contactServiceTestSuite) TestCreateKeepsProvidedStatus() {
	ctx := s.testData.ctx

	s.contactRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Contact")).Return(nil).Once()

	s.T().Log("provided status must not be replaced with default one")
	{
		c, err := s.contactSvc.Create(ctx, model.NewContact{Name: "Jane Doe", Email: "jane@x.com", Status: model.StatusClosed})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(model.StatusClosed, c.Status, "provided status must be kept")
	}
}

func (s *contactServiceTestSuite) TestCreateRepositoryFailed() {
	ctx := s.testData.ctx

	s.contactRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Contact")).Return(errors.New("persistence err")).Once()

	s.T().Log("persistence error must be raised up and no contact returned")
	{
		c, err := s.contactSvc.Create(ctx, model.NewContact{Name: "Jane Doe", Email: "jane@x.com"})
		s.Assert().Error(err, "error must be raised")
		s.Assert().Nil(c, "no contact must be returned")
	}
}

func (s *contactServiceTestSuite) TestFindAllPassesFilterThrough() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	filter := repository.ListFilter{Status: model.StatusClosed, Search: "acme"}
	s.contactRpsMock.On("FindAll", ctx, filter).Return([]*model.Contact{contact}, nil).Once()

	s.T().Log("filter must reach repository unchanged")
	{
		contacts, err := s.contactSvc.FindAll(ctx, filter)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Len(contacts, 1, "single contact must be returned")
	}
}

func (s *contactServiceTestSuite) TestFindByIDFromCache() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	s.contactCacheMock.On("FindByID", ctx, contact.ID).Return(contact, nil).Once()

	s.T().Log("contact must be found in cache")
	{
		_, err := s.contactSvc.FindByID(ctx, contact.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.contactRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, contact.ID)
	}
}

func (s *contactServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	s.contactCacheMock.On("FindByID", ctx, contact.ID).Return(nil, nil).Once()
	s.contactRpsMock.On("FindByID", ctx, contact.ID).Return(nil, nil).Once()

	s.T().Log("contact is missing in cache and in primary datasource")
	{
		c, err := s.contactSvc.FindByID(ctx, contact.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(c, "no contact must be present but it was found")
		s.contactCacheMock.AssertNotCalled(s.T(), "Create", mock.AnythingOfType("*model.Contact"))
	}
}

func (s *contactServiceTestSuite) TestFindByIDCached() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	s.contactCacheMock.On("FindByID", ctx, contact.ID).Return(nil, nil).Once()
	s.contactRpsMock.On("FindByID", ctx, contact.ID).Return(contact, nil).Once()
	s.contactCacheMock.On("Create", ctx, contact).Return(nil).Once()

	s.T().Log("contact is not in cache, found in primary datasource and cached")
	{
		c, err := s.contactSvc.FindByID(ctx, contact.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(c, "contact must be found")
		s.contactCacheMock.AssertCalled(s.T(), "Create", ctx, mock.AnythingOfType("*model.Contact"))
	}
}

func (s *contactServiceTestSuite) TestUpdateByIDMissingContact() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	s.contactRpsMock.On("FindByID", ctx, contact.ID).Return(nil, nil).Once()

	s.T().Log("missing id is not an error - nil contact is returned and nothing is persisted")
	{
		status := model.StatusClosed
		c, err := s.contactSvc.UpdateByID(ctx, model.UpdateContact{ID: contact.ID, Status: &status})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(c, "nil contact must be returned")
		s.contactRpsMock.AssertNotCalled(s.T(), "Update", ctx, mock.AnythingOfType("*model.Contact"))
	}
}

func (s *contactServiceTestSuite) TestUpdateByIDMergesAndEvicts() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	s.contactRpsMock.On("FindByID", ctx, contact.ID).Return(contact, nil).Once()
	s.contactCacheMock.On("DeleteByID", ctx, contact.ID).Return(nil).Once()
	s.contactRpsMock.On("Update", ctx, mock.AnythingOfType("*model.Contact")).Return(nil).Once()

	s.T().Log("supplied fields are merged, cached entry is evicted")
	{
		status := model.StatusClosed
		c, err := s.contactSvc.UpdateByID(ctx, model.UpdateContact{ID: contact.ID, Status: &status})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(model.StatusClosed, c.Status, "status must be merged")
		s.Assert().Equal(contact.Name, c.Name, "name must be kept")
		s.Assert().Equal(contact.CreatedAt, c.CreatedAt, "creation time must be kept")
		s.contactCacheMock.AssertCalled(s.T(), "DeleteByID", ctx, contact.ID)
	}
}

func (s *contactServiceTestSuite) TestDeleteByIDCacheFailed() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	s.contactCacheMock.On("DeleteByID", ctx, contact.ID).Return(errors.New("cache err")).Once()

	s.T().Log("delete contact from cache failed")
	{
		err := s.contactSvc.DeleteByID(ctx, contact.ID)
		s.Assert().Error(err, "cache raised error - error must be raised up")
	}
}

func (s *contactServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.testData.ctx
	contact := s.testData.contact

	s.contactCacheMock.On("DeleteByID", ctx, contact.ID).Return(nil).Once()
	s.contactRpsMock.On("DeleteByID", ctx, contact.ID).Return(nil).Once()

	s.T().Log("deleted successfully")
	{
		err := s.contactSvc.DeleteByID(ctx, contact.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.contactRpsMock.AssertCalled(s.T(), "DeleteByID", ctx, contact.ID)
	}
}

func TestContactService(t *testing.T) {
	suite.Run(t, new(contactServiceTestSuite))
}
