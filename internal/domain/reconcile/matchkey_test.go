package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/reconcile"
)

// TestBuildKey_Canonica verifica la forma canónica "{prefijo}-{sufijo}" y la
// normalización de espacios y ceros a la izquierda.
func TestBuildKey_Canonica(t *testing.T) {
	cases := []struct {
		prefix, suffix string
		want           reconcile.MatchKey
	}{
		{"100", "5", "100-5"},
		{" 100 ", "5", "100-5"},
		{"0100", "005", "100-5"},
		{"7", "123456", "7-123456"},
	}
	for _, tc := range cases {
		key, ok, err := reconcile.BuildKey(tc.prefix, tc.suffix)
		require.NoError(t, err, "prefijo=%q sufijo=%q", tc.prefix, tc.suffix)
		require.True(t, ok)
		assert.Equal(t, tc.want, key)
	}
}

// TestBuildKey_Determinista: el mismo input produce siempre la misma clave.
func TestBuildKey_Determinista(t *testing.T) {
	k1, ok1, err1 := reconcile.BuildKey("4312", "98")
	k2, ok2, err2 := reconcile.BuildKey("4312", "98")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, k1, k2, "la construcción de clave debe ser una función pura")
}

// TestBuildKey_CentinelaCero: un cero en cualquiera de los dos campos significa
// "sin OC SGM", no una clave válida "0-0".
func TestBuildKey_CentinelaCero(t *testing.T) {
	cases := [][2]string{
		{"0", "5"},
		{"100", "0"},
		{"0", "0"},
		{"", "5"},
		{"100", ""},
		{"NULL", "5"},
	}
	for _, tc := range cases {
		key, ok, err := reconcile.BuildKey(tc[0], tc[1])
		require.NoError(t, err, "prefijo=%q sufijo=%q", tc[0], tc[1])
		assert.False(t, ok, "prefijo=%q sufijo=%q no debe producir clave", tc[0], tc[1])
		assert.Empty(t, key)
	}
}

// TestBuildKey_Malformada: valores no numéricos o negativos se rechazan con
// ErrMalformedKey, jamás se convierten en clave.
func TestBuildKey_Malformada(t *testing.T) {
	cases := [][2]string{
		{"abc", "5"},
		{"100", "x9"},
		{"-3", "5"},
		{"100", "-1"},
		{"12.5", "3"},
	}
	for _, tc := range cases {
		_, ok, err := reconcile.BuildKey(tc[0], tc[1])
		require.Error(t, err, "prefijo=%q sufijo=%q", tc[0], tc[1])
		assert.ErrorIs(t, err, domain.ErrMalformedKey)
		assert.False(t, ok)
	}
}
