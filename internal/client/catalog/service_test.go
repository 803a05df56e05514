package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/client/notify"
	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// ---- fakes ----

type fakeClient struct {
	Sweets   []models.Sweet
	ListErr  error
	Returned models.Sweet
	CallErr  error

	ListCalls     int
	PurchaseCalls int
	LastID        models.ID
	LastAmount    int
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	return "", nil
}
func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	return nil
}
func (f *fakeClient) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Sweets, nil
}
func (f *fakeClient) Purchase(ctx context.Context, id models.ID) (models.Sweet, error) {
	f.PurchaseCalls++
	f.LastID = id
	return f.Returned, f.CallErr
}
func (f *fakeClient) CreateSweet(ctx context.Context, s models.Sweet) (models.Sweet, error) {
	return f.Returned, f.CallErr
}
func (f *fakeClient) UpdateSweet(ctx context.Context, id models.ID, s models.Sweet) (models.Sweet, error) {
	f.LastID = id
	return f.Returned, f.CallErr
}
func (f *fakeClient) DeleteSweet(ctx context.Context, id models.ID) error {
	f.LastID = id
	return f.CallErr
}
func (f *fakeClient) Restock(ctx context.Context, id models.ID, amount int) (models.Sweet, error) {
	f.LastID, f.LastAmount = id, amount
	return f.Returned, f.CallErr
}
func (f *fakeClient) SetToken(token string) {}
func (f *fakeClient) Close() error          { return nil }

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (r *recordingNotifier) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recordingNotifier) Error(msg string)   { r.errors = append(r.errors, msg) }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seeded() []models.Sweet {
	return []models.Sweet{
		{Id: "1", Name: "Chocolate Truffles", Category: "Chocolate", Price: decimal.RequireFromString("12.99"), Quantity: 25},
		{Id: "2", Name: "Gummy Bears", Category: "Gummy", Price: decimal.RequireFromString("5.99"), Quantity: 50},
	}
}

func newSeededService(fc *fakeClient, token string, n notify.Notifier) *Service {
	if n == nil {
		n = notify.Discard
	}
	svc := NewService(fc, staticToken(token), n, testLogger())
	svc.sweets = seeded()
	return svc
}

// ---- tests ----

func TestRefreshReplacesCollection(t *testing.T) {
	fc := &fakeClient{Sweets: seeded()}
	svc := NewService(fc, staticToken(""), notify.Discard, testLogger())

	require.NoError(t, svc.Refresh(context.Background()))
	require.Len(t, svc.Sweets(), 2)
	require.Equal(t, 1, fc.ListCalls)
	require.False(t, svc.Loading())
}

func TestRefreshFailureKeepsPreviousCollection(t *testing.T) {
	fc := &fakeClient{ListErr: api.ErrFetch}
	rec := &recordingNotifier{}
	svc := newSeededService(fc, "", rec)

	require.ErrorIs(t, svc.Refresh(context.Background()), api.ErrFetch)
	require.Len(t, svc.Sweets(), 2)
	require.Equal(t, []string{"Could not load sweets from the shop."}, rec.errors)
}

func TestSweetsReturnsCopy(t *testing.T) {
	svc := newSeededService(&fakeClient{}, "", nil)

	got := svc.Sweets()
	got[0].Quantity = 999

	fresh, okFound := svc.Get("1")
	require.True(t, okFound)
	require.Equal(t, 25, fresh.Quantity)
}

func TestPurchasePatchesOnlyMatchingEntry(t *testing.T) {
	fc := &fakeClient{Returned: models.Sweet{Id: "1", Name: "Chocolate Truffles", Category: "Chocolate", Price: decimal.RequireFromString("12.99"), Quantity: 24}}
	rec := &recordingNotifier{}
	svc := newSeededService(fc, "tok", rec)

	got, err := svc.Purchase(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, 24, got.Quantity)

	sweets := svc.Sweets()
	require.Equal(t, 24, sweets[0].Quantity)
	// no other entry changes
	require.Equal(t, seeded()[1], sweets[1])
	require.Equal(t, []string{"Purchased Chocolate Truffles!"}, rec.successes)
}

func TestPurchaseWithoutTokenMakesNoNetworkCall(t *testing.T) {
	fc := &fakeClient{}
	rec := &recordingNotifier{}
	svc := newSeededService(fc, "", rec)

	_, err := svc.Purchase(context.Background(), "1")
	require.ErrorIs(t, err, api.ErrNotLoggedIn)
	require.Zero(t, fc.PurchaseCalls)
	require.Equal(t, []string{"You must be logged in to purchase an item."}, rec.errors)
}

func TestPurchaseFailureLeavesCacheAndSurfacesServerMessage(t *testing.T) {
	fc := &fakeClient{CallErr: &api.APIError{Status: 400, Message: "This sweet is out of stock."}}
	rec := &recordingNotifier{}
	svc := newSeededService(fc, "tok", rec)

	_, err := svc.Purchase(context.Background(), "2")
	require.Error(t, err)
	require.Equal(t, seeded(), svc.Sweets())
	require.Equal(t, []string{"This sweet is out of stock."}, rec.errors)
}

func TestCreateAppends(t *testing.T) {
	created := models.Sweet{Id: "9", Name: "Fudge", Category: "Chocolate", Quantity: 10}
	fc := &fakeClient{Returned: created}
	rec := &recordingNotifier{}
	svc := newSeededService(fc, "tok", rec)

	got, err := svc.Create(context.Background(), models.Sweet{Name: "Fudge"})
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.Len(t, svc.Sweets(), 3)
	require.Equal(t, []string{"Sweet added successfully!"}, rec.successes)
}

func TestUpdateReplacesByID(t *testing.T) {
	updated := models.Sweet{Id: "2", Name: "Sour Gummy Bears", Category: "Gummy", Quantity: 50}
	fc := &fakeClient{Returned: updated}
	svc := newSeededService(fc, "tok", nil)

	_, err := svc.Update(context.Background(), "2", updated)
	require.NoError(t, err)

	got, okFound := svc.Get("2")
	require.True(t, okFound)
	require.Equal(t, "Sour Gummy Bears", got.Name)
	require.Len(t, svc.Sweets(), 2)
}

func TestDeleteRemovesByID(t *testing.T) {
	fc := &fakeClient{}
	svc := newSeededService(fc, "tok", nil)

	require.NoError(t, svc.Delete(context.Background(), "1"))

	require.Len(t, svc.Sweets(), 1)
	_, okFound := svc.Get("1")
	require.False(t, okFound)
}

func TestDeleteFailureLeavesCache(t *testing.T) {
	fc := &fakeClient{CallErr: &api.APIError{Status: 403, Message: "forbidden"}}
	rec := &recordingNotifier{}
	svc := newSeededService(fc, "tok", rec)

	require.Error(t, svc.Delete(context.Background(), "1"))
	require.Len(t, svc.Sweets(), 2)
	require.Equal(t, []string{"forbidden"}, rec.errors)
}

func TestRestockPatches(t *testing.T) {
	fc := &fakeClient{Returned: models.Sweet{Id: "1", Name: "Chocolate Truffles", Category: "Chocolate", Quantity: 50}}
	svc := newSeededService(fc, "tok", nil)

	got, err := svc.Restock(context.Background(), "1", 25)
	require.NoError(t, err)
	require.Equal(t, 50, got.Quantity)
	require.Equal(t, 25, fc.LastAmount)

	cached, okFound := svc.Get("1")
	require.True(t, okFound)
	require.Equal(t, 50, cached.Quantity)
}

func TestUnavailableBackendMessage(t *testing.T) {
	fc := &fakeClient{CallErr: api.ErrUnavailable}
	rec := &recordingNotifier{}
	svc := newSeededService(fc, "tok", rec)

	_, err := svc.Purchase(context.Background(), "1")
	require.ErrorIs(t, err, api.ErrUnavailable)
	require.Equal(t, []string{"The shop is unreachable right now."}, rec.errors)
}
