package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streetbites/guide/client/internal/types"
)

func TestGetRestaurant_PathKeyedByID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/restaurants/7" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"name":"Taco Stand","reviews":[{"id":3,"user_name":"ana","rating":4,"comment":"spicy"}]}`))
	}))
	defer srv.Close()

	detail, err := GetRestaurant(context.Background(), srv.Client(), srv.URL, "7")
	if err != nil {
		t.Fatalf("GetRestaurant error: %v", err)
	}
	if len(detail.Reviews) != 1 || detail.Reviews[0].UserName != "ana" || detail.Reviews[0].Rating != 4 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestGetRestaurant_MissingID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if _, err := GetRestaurant(context.Background(), srv.Client(), srv.URL, " "); !errors.Is(err, types.ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	exec := &mockExec{}
	if err := GetRestaurantAsync(context.Background(), exec, srv.Client(), srv.URL, "", func(*types.RestaurantDetail, error) {}); !errors.Is(err, types.ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("nothing should be enqueued, got %v", exec.calls)
	}
}

func TestGetRestaurantAsync_KeyedByIDAndDelivers(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reviews":[]}`))
	}))
	defer srv.Close()

	exec := &mockExec{}
	var (
		got       *types.RestaurantDetail
		gotErr    error
		delivered bool
	)
	err := GetRestaurantAsync(context.Background(), exec, srv.Client(), srv.URL, "12", func(d *types.RestaurantDetail, err error) {
		got, gotErr, delivered = d, err, true
	})
	if err != nil {
		t.Fatalf("GetRestaurantAsync error: %v", err)
	}
	if len(exec.calls) != 1 || exec.calls[0] != "12" {
		t.Fatalf("expected one Submit keyed by restaurant id, got %v", exec.calls)
	}
	if !delivered || gotErr != nil || got == nil {
		t.Fatalf("unexpected delivery: %+v err=%v", got, gotErr)
	}
}

func TestGetRestaurantAsync_FailureDeliveredNotRetried(t *testing.T) {
	t.Parallel()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	exec := &mockExec{}
	var gotErr error
	if err := GetRestaurantAsync(context.Background(), exec, srv.Client(), srv.URL, "12", func(_ *types.RestaurantDetail, err error) {
		gotErr = err
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if gotErr == nil {
		t.Fatal("expected delivered error")
	}
	if exec.errs[0] != nil {
		t.Fatalf("job must report success to the executor, got %v", exec.errs[0])
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestGetRestaurantAsync_SubmitError(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("closed")
	exec := &mockExec{fail: sentinel}
	err := GetRestaurantAsync(context.Background(), exec, http.DefaultClient, "http://unused", "1", func(*types.RestaurantDetail, error) {
		t.Error("deliver must not run when submit fails")
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected submit error, got %v", err)
	}
}
