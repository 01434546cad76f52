package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportChange_FansOutAndKeepsMethod(t *testing.T) {
	s, err := NewStripe("pk_test_1", "", nil, nil)
	require.NoError(t, err)

	var got []ChangeEvent
	s.OnChange(func(ev ChangeEvent) { got = append(got, ev) })

	s.ReportChange(ChangeEvent{ErrorMessage: "Your card number is incomplete."})
	s.ReportChange(ChangeEvent{Complete: true, PaymentMethod: "pm_123"})

	require.Len(t, got, 2)
	assert.Equal(t, "Your card number is incomplete.", got[0].ErrorMessage)
	assert.True(t, got[1].Complete)
}

func TestConfirm_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_abc/confirm", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pk_test_1", r.PostForm.Get("key"))
		assert.Equal(t, "pm_123", r.PostForm.Get("payment_method"))
		assert.Equal(t, "true", r.PostForm.Get("error_on_requires_action"))
		_, _ = w.Write([]byte(`{"status":"succeeded"}`))
	}))
	defer srv.Close()

	s, err := NewStripe("pk_test_1", srv.URL, srv.Client(), nil)
	require.NoError(t, err)
	s.Mount("card-element")
	s.ReportChange(ChangeEvent{Complete: true, PaymentMethod: "pm_123"})

	require.NoError(t, s.Confirm(context.Background(), "pi_abc_secret_xyz"))
}

func TestConfirm_DeclineSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Your card has insufficient funds."}}`))
	}))
	defer srv.Close()

	s, err := NewStripe("pk_test_1", srv.URL, srv.Client(), nil)
	require.NoError(t, err)

	err = s.Confirm(context.Background(), "pi_abc_secret_xyz")
	require.EqualError(t, err, "Your card has insufficient funds.")
}

func TestConfirm_MalformedSecret(t *testing.T) {
	s, err := NewStripe("pk_test_1", "", nil, nil)
	require.NoError(t, err)

	err = s.Confirm(context.Background(), "garbage")
	require.Error(t, err)
}
