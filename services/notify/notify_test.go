package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"wishbox/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users     []models.User
	wishlists map[string]map[string]bool
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) SetVerified(_ context.Context, _ string, _ time.Time) error { return nil }

func (f *fakeUserRepo) Merge(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}

func (f *fakeUserRepo) SetPhotoURL(_ context.Context, _, _ string, _ time.Time) error { return nil }

func (f *fakeUserRepo) HasWishlistProduct(_ context.Context, userID, productID string) (bool, error) {
	return f.wishlists[userID][productID], nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.failFor[to] {
		return errors.New("relay rejected message")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func fixture() (*DefaultNotifyService, *fakeMailer) {
	users := &fakeUserRepo{
		users: []models.User{
			{ID: "u1", Email: "u1@example.com", Name: "Ada"},
			{ID: "u2", Email: "u2@example.com"},
			{ID: "u3", Email: ""},                             // no email on file, always skipped
			{ID: "u4", Email: "u4@example.com", Name: "Leo"}, // not wishing for p1
		},
		wishlists: map[string]map[string]bool{
			"u1": {"p1": true},
			"u2": {"p1": true},
			"u3": {"p1": true},
			"u4": {"p2": true},
		},
	}
	m := &fakeMailer{failFor: make(map[string]bool)}
	return &DefaultNotifyService{Users: users, Mailer: m}, m
}

func drop() models.PriceDrop {
	return models.PriceDrop{
		ProductID:   "p1",
		ProductName: "Noise Cancelling Headphones",
		OldPrice:    1000,
		NewPrice:    800,
	}
}

func TestNoDropIsSilentNoOp(t *testing.T) {
	svc, m := fixture()

	for _, newPrice := range []float64{1000, 1200} {
		d := drop()
		d.NewPrice = newPrice
		res, err := svc.NotifyPriceDrop(context.Background(), d)
		require.NoError(t, err)
		assert.Zero(t, res.Notified)
		assert.Zero(t, res.Candidates)
	}
	assert.Empty(t, m.sent)
}

func TestNotifiesExactlyWishlistHoldersWithEmail(t *testing.T) {
	svc, m := fixture()

	res, err := svc.NotifyPriceDrop(context.Background(), drop())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Candidates)
	assert.Equal(t, 2, res.Notified)

	got := map[string]bool{}
	for _, s := range m.sent {
		got[s.To] = true
	}
	assert.Equal(t, map[string]bool{"u1@example.com": true, "u2@example.com": true}, got)
}

func TestSavingsMathInEmailBody(t *testing.T) {
	svc, m := fixture()

	_, err := svc.NotifyPriceDrop(context.Background(), drop())
	require.NoError(t, err)
	require.NotEmpty(t, m.sent)

	body := m.sent[0].Body
	assert.Contains(t, body, "Noise Cancelling Headphones")
	assert.Contains(t, body, "200.00")   // savings = 1000 - 800
	assert.Contains(t, body, "20% off")  // round(100 * 200 / 1000)
	assert.Contains(t, m.sent[0].Subject, "20%")
}

func TestNameFallbackForAnonymousUsers(t *testing.T) {
	svc, m := fixture()

	_, err := svc.NotifyPriceDrop(context.Background(), drop())
	require.NoError(t, err)

	var anonBody string
	for _, s := range m.sent {
		if s.To == "u2@example.com" {
			anonBody = s.Body
		}
	}
	assert.Contains(t, anonBody, "Valued Customer")
}

func TestSendFailureDoesNotAbortBroadcast(t *testing.T) {
	svc, m := fixture()
	m.failFor["u1@example.com"] = true

	res, err := svc.NotifyPriceDrop(context.Background(), drop())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Candidates)
	assert.Equal(t, 1, res.Notified)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "u2@example.com", m.sent[0].To)
}
