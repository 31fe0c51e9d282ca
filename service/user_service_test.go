package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridehub/pkg/models"
)

func signUpProvider(t *testing.T, svc IServiceManager, email string) *models.User {
	t.Helper()
	user, err := svc.User().SignUp(context.Background(), SignUpRequest{
		Name: "Asa Mensah", Phone: "0200000000", Email: email,
		Password: "pw", Role: models.RoleProvider, CarType: "sedan",
	})
	require.NoError(t, err)
	return user
}

func TestSignUp(t *testing.T) {
	svc := newTestManager(t)
	ctx := context.Background()

	user, err := svc.User().SignUp(ctx, SignUpRequest{
		Name: "Ama Owusu", Phone: "0551234567", Email: "  Ama@X.com ",
		Password: "secret", Role: models.RoleCustomer,
		CarType: "ignored for customers",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ama@x.com", user.Email)
	assert.Empty(t, user.CarType)

	// signup also logs the account in
	session, err := svc.User().Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "ama@x.com", session.Email)
	assert.Equal(t, models.RoleCustomer, session.Role)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := newTestManager(t)
	signUpProvider(t, svc, "asa@x.com")

	_, err := svc.User().SignUp(context.Background(), SignUpRequest{
		Name: "Other", Phone: "0201111111", Email: "ASA@x.com",
		Password: "pw", Role: models.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_MissingFields(t *testing.T) {
	svc := newTestManager(t)

	_, err := svc.User().SignUp(context.Background(), SignUpRequest{
		Name: "Ama", Email: "ama@x.com",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"phone", "password", "role"}, vErr.Missing)
}

func TestLoginLogout(t *testing.T) {
	svc := newTestManager(t)
	ctx := context.Background()
	signUpProvider(t, svc, "asa@x.com")
	require.NoError(t, svc.User().Logout(ctx))

	_, err := svc.User().Login(ctx, "asa@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.User().Login(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := svc.User().Login(ctx, " ASA@x.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "asa@x.com", user.Email)

	session, err := svc.User().Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "asa@x.com", session.Email)

	require.NoError(t, svc.User().Logout(ctx))
	session, err = svc.User().Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestUpdateLocation_PropagatesToOwnBookings(t *testing.T) {
	svc := newTestManager(t)
	ctx := context.Background()

	_, err := svc.User().SignUp(ctx, SignUpRequest{
		Name: "Ama", Phone: "0551234567", Email: "ama@x.com",
		Password: "pw", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	own, err := svc.Booking().Create(ctx, validRequest())
	require.NoError(t, err)

	otherReq := validRequest()
	otherReq.UserEmail = "someone-else@x.com"
	other, err := svc.Booking().Create(ctx, otherReq)
	require.NoError(t, err)

	coords := models.Coordinates{Latitude: 5.56, Longitude: -0.2}
	require.NoError(t, svc.User().UpdateLocation(ctx, "ama@x.com", coords))

	user, err := svc.User().GetByEmail(ctx, "ama@x.com")
	require.NoError(t, err)
	require.NotNil(t, user.Lat)
	assert.Equal(t, 5.56, *user.Lat)

	updated, err := svc.Booking().Get(ctx, own.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Lat)
	assert.Equal(t, 5.56, *updated.Lat)
	assert.Equal(t, -0.2, *updated.Lng)

	untouched, err := svc.Booking().Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.Lat)
}

func TestUpdateLocation_ProviderDoesNotTouchBookings(t *testing.T) {
	svc := newTestManager(t)
	ctx := context.Background()
	signUpProvider(t, svc, "asa@x.com")

	booking, err := svc.Booking().Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.User().UpdateLocation(ctx, "asa@x.com", models.Coordinates{Latitude: 1, Longitude: 2}))

	current, err := svc.Booking().Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Nil(t, current.Lat)
}

func TestUpdateLocation_UnknownUser(t *testing.T) {
	svc := newTestManager(t)
	err := svc.User().UpdateLocation(context.Background(), "ghost@x.com", models.Coordinates{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProviders(t *testing.T) {
	svc := newTestManager(t)
	ctx := context.Background()
	signUpProvider(t, svc, "asa@x.com")
	_, err := svc.User().SignUp(ctx, SignUpRequest{
		Name: "Ama", Phone: "0551234567", Email: "ama@x.com",
		Password: "pw", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	providers, err := svc.User().Providers(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "asa@x.com", providers[0].Email)
}
