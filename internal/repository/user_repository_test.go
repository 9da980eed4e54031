package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/testutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.repo = NewUserRepository(s.db)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreate_HashesAndNormalizes() {
	user := &models.User{Username: "  alice ", Email: " Alice@Example.COM ", Password: "Secret1!"}
	s.Require().NoError(s.repo.Create(ctx, user))

	stored, err := s.repo.FindByEmail(ctx, "ALICE@example.com")
	s.Require().NoError(err)
	s.Equal("alice", stored.Username)
	s.Equal("alice@example.com", stored.Email)
	s.NotEqual("Secret1!", stored.PasswordHash)
	s.True(auth.VerifyPassword("Secret1!", stored.PasswordHash))
	s.Empty(user.Password, "plaintext is dropped after hashing")
}

func (s *UserRepositoryTestSuite) TestCreate_ValidationFailure() {
	err := s.repo.Create(ctx, &models.User{Username: "al", Email: "not-an-email", Password: "weak"})

	var appErr *apierrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(apierrors.KindValidation, appErr.Kind)
	s.Contains(appErr.UserMessage, "username must be at least 3 characters")
	s.Contains(appErr.UserMessage, "email must be a valid email address")
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateEmailIsConflict() {
	createUser(s.T(), s.db, "alice")

	err := s.repo.Create(ctx, &models.User{Username: "alice2", Email: "alice@example.com", Password: "Secret1!"})

	s.ErrorIs(err, ErrDuplicateUser)
	s.Equal(apierrors.KindConflict, apierrors.KindOf(err))
}

func (s *UserRepositoryTestSuite) TestUpdate_UnrelatedFieldKeepsHash() {
	user := createUser(s.T(), s.db, "alice")
	before, err := s.repo.FindByID(ctx, user.ID)
	s.Require().NoError(err)

	before.Username = "alice_renamed"
	s.Require().NoError(s.repo.Update(ctx, before))

	after, err := s.repo.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice_renamed", after.Username)
	s.Equal(before.PasswordHash, after.PasswordHash)
}

func (s *UserRepositoryTestSuite) TestUpdate_PasswordChangeRehashes() {
	user := createUser(s.T(), s.db, "alice")
	oldHash := user.PasswordHash

	user.Password = "Another2@"
	s.Require().NoError(s.repo.Update(ctx, user))

	stored, err := s.repo.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.NotEqual(oldHash, stored.PasswordHash)
	s.True(auth.VerifyPassword("Another2@", stored.PasswordHash))
}

func (s *UserRepositoryTestSuite) TestApplyPasswordReset() {
	user := createUser(s.T(), s.db, "alice")
	now := time.Now().UTC()
	s.Require().NoError(s.repo.SetResetToken(ctx, user.ID, "tok-1", now.Add(15*time.Minute)))

	ok, err := s.repo.ApplyPasswordReset(ctx, user.ID, "tok-other", "new-hash", now)
	s.Require().NoError(err)
	s.False(ok, "mismatched token")

	ok, err = s.repo.ApplyPasswordReset(ctx, user.ID, "tok-1", "new-hash", now.Add(time.Hour))
	s.Require().NoError(err)
	s.False(ok, "expired token")

	ok, err = s.repo.ApplyPasswordReset(ctx, user.ID, "tok-1", "new-hash", now)
	s.Require().NoError(err)
	s.True(ok)

	stored, err := s.repo.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("new-hash", stored.PasswordHash)
	s.Nil(stored.ResetToken)
	s.Nil(stored.ResetTokenExpires)

	ok, err = s.repo.ApplyPasswordReset(ctx, user.ID, "tok-1", "newer-hash", now)
	s.Require().NoError(err)
	s.False(ok, "token is single use")
}

func (s *UserRepositoryTestSuite) TestSetResetToken_UnknownUser() {
	err := s.repo.SetResetToken(ctx, "00000000-0000-0000-0000-000000000000", "tok", time.Now())
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *UserRepositoryTestSuite) TestDelete_CascadesOwnedData() {
	alice := createUser(s.T(), s.db, "alice")
	bob := createUser(s.T(), s.db, "bob")
	itinerary := createItinerary(s.T(), s.db, alice.ID, "Trip")
	bobsTrip := createItinerary(s.T(), s.db, bob.ID, "Bob trip")

	s.Require().NoError(s.db.Create(&models.Accommodation{
		Type: models.AccommodationHotel, Name: "Inn", Address: "1 Main", Location: "Paris",
		CheckInDate: date("2025-06-01"), CheckOutDate: date("2025-06-03"),
		ItineraryID: itinerary.ID, CreatedByID: alice.ID,
	}).Error)
	s.Require().NoError(s.db.Create(&models.PointOfInterest{
		Name: "Louvre", Location: "Paris", ItineraryID: itinerary.ID,
	}).Error)

	friends := NewFriendRepository(s.db)
	_, err := friends.Add(ctx, alice.ID, bob.ID)
	s.Require().NoError(err)
	_, err = friends.Add(ctx, bob.ID, alice.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, alice.ID))

	_, err = s.repo.FindByID(ctx, alice.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	for _, model := range []interface{}{&models.Accommodation{}, &models.PointOfInterest{}} {
		var count int64
		s.Require().NoError(s.db.Model(model).Count(&count).Error)
		s.Zero(count)
	}

	var itineraryCount, edgeCount, dayCount, activityCount int64
	s.db.Model(&models.Itinerary{}).Count(&itineraryCount)
	s.db.Model(&models.UserFriend{}).Count(&edgeCount)
	s.db.Model(&models.ItineraryDay{}).Where("itinerary_id = ?", itinerary.ID).Count(&dayCount)
	s.db.Model(&models.Activity{}).Count(&activityCount)
	s.Equal(int64(1), itineraryCount, "other users' itineraries stay")
	s.Zero(edgeCount, "friend edges in both directions are removed")
	s.Zero(dayCount)
	s.Equal(int64(2), activityCount, "only bob's activities remain")

	_, err = NewItineraryRepository(s.db).FindByID(ctx, bobsTrip.ID)
	s.NoError(err)
}

func (s *UserRepositoryTestSuite) TestDelete_Missing() {
	err := s.repo.Delete(ctx, "00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DriverErrorPropagates(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnError(errors.New("connection reset by peer"))

	_, err = NewUserRepository(db).FindByEmail(ctx, " Alice@Example.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}
