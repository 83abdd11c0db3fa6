// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures and ground-truth conversions (gonum mat).
//   - Keep all data finite so kernel and fallback paths are comparable.

package matrix_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlinalg/matrix"
)

// tol is the absolute tolerance used when comparing kernel and fallback results.
const tol = 1e-9

// bothOrders is the table every layout-sensitive test runs over.
var bothOrders = []matrix.Order{matrix.ColMajor, matrix.RowMajor}

// grid returns rows×cols values v[r][c] = r*cols + c.
func grid(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
		for c := range out[r] {
			out[r][c] = float64(r*cols + c)
		}
	}

	return out
}

// randRows returns rows×cols deterministic pseudo-random values in [-1, 1).
func randRows(seed int64, rows, cols int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
		for c := range out[r] {
			out[r][c] = 2*rng.Float64() - 1
		}
	}

	return out
}

// mustFromRows builds a Mat from row slices or fails the test.
func mustFromRows[T any](tb testing.TB, rows [][]T, opts ...matrix.Option) *matrix.Mat[T] {
	tb.Helper()
	m, err := matrix.FromRows(rows, opts...)
	require.NoError(tb, err)

	return m
}

// flatten concatenates row slices (logical row-major order).
func flatten[T any](rows [][]T) []T {
	var out []T
	for _, r := range rows {
		out = append(out, r...)
	}

	return out
}

// toDense converts any float64 view into a gonum Dense for ground-truth products.
func toDense(tb testing.TB, v matrix.StridedMat[float64]) *mat.Dense {
	tb.Helper()
	data, err := v.ToSlice()
	require.NoError(tb, err)
	if v.Rows() == 0 || v.Cols() == 0 {
		return &mat.Dense{}
	}

	return mat.NewDense(v.Rows(), v.Cols(), data)
}

// requireDenseClose asserts got (logical row-major) ≈ want.
func requireDenseClose(tb testing.TB, want *mat.Dense, got []float64) {
	tb.Helper()
	r, c := want.Dims()
	wantData := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		wantData = append(wantData, mat.Row(nil, i, want)...)
	}
	require.Len(tb, got, len(wantData))
	require.Truef(tb, floats.EqualApprox(wantData, got, tol), "want %v\n got %v", wantData, got)
}

// requireViewEqual asserts a view holds exactly the given rows.
func requireViewEqual[T any](tb testing.TB, want [][]T, v matrix.StridedMat[T]) {
	tb.Helper()
	require.Equal(tb, len(want), v.Rows())
	for r := range want {
		require.Equal(tb, len(want[r]), v.Cols())
		for c := range want[r] {
			got, err := v.At(r, c)
			require.NoError(tb, err)
			require.Equalf(tb, want[r][c], got, "at (%d,%d)", r, c)
		}
	}
}

// logEvent is one decoded zerolog line.
type logEvent map[string]any

// captureLogger returns a debug-level logger writing JSON lines into buf.
func captureLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf).Level(zerolog.DebugLevel)
}

// events decodes every JSON line written to buf.
func events(tb testing.TB, buf *bytes.Buffer) []logEvent {
	tb.Helper()
	var out []logEvent
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var e logEvent
		require.NoError(tb, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(tb, sc.Err())

	return out
}

// eventsFor filters events by the "op" field.
func eventsFor(evs []logEvent, op string) []logEvent {
	var out []logEvent
	for _, e := range evs {
		if e["op"] == op {
			out = append(out, e)
		}
	}

	return out
}
