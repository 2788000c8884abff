package models

import (
	"database/sql"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_FailureCount(t *testing.T) {
	tests := []struct {
		name string
		raw  sql.NullFloat64
		want int64
	}{
		{"null", sql.NullFloat64{}, 0},
		{"zero", sql.NullFloat64{Float64: 0, Valid: true}, 0},
		{"integer", sql.NullFloat64{Float64: 4, Valid: true}, 4},
		{"fraction truncates down", sql.NullFloat64{Float64: 4.99, Valid: true}, 4},
		{"fraction at threshold", sql.NullFloat64{Float64: 5.01, Valid: true}, 5},
		{"negative clamps", sql.NullFloat64{Float64: -3, Valid: true}, 0},
		{"negative fraction", sql.NullFloat64{Float64: -0.5, Valid: true}, 0},
		{"NaN", sql.NullFloat64{Float64: math.NaN(), Valid: true}, 0},
		{"huge", sql.NullFloat64{Float64: math.Inf(1), Valid: true}, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{LoginFailCnt: tt.raw}
			assert.Equal(t, tt.want, u.FailureCount())
		})
	}
}

func TestUser_SetFailureCount(t *testing.T) {
	u := &User{}
	u.SetFailureCount(7)
	assert.True(t, u.LoginFailCnt.Valid)
	assert.Equal(t, int64(7), u.FailureCount())
}

func TestUser_IsActive(t *testing.T) {
	assert.True(t, (&User{UseFlag: "1"}).IsActive())
	assert.False(t, (&User{UseFlag: "0"}).IsActive())
	assert.False(t, (&User{}).IsActive())
}

func TestUser_IsAdmin(t *testing.T) {
	nine, three := 9, 3
	assert.True(t, (&User{AuthNum: &nine}).IsAdmin())
	assert.False(t, (&User{AuthNum: &three}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
