package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaintStatus_Valid(t *testing.T) {
	for _, s := range ComplaintStatuses {
		assert.True(t, s.Valid(), s)
	}
	for _, s := range []ComplaintStatus{"", "open", "ABIERTA", "closed", "en revision"} {
		assert.False(t, s.Valid(), s)
	}
}

func TestUser_InfoOmitsPassword(t *testing.T) {
	u := User{ID: 7, Username: "admin", Password: "secret", SessionStatus: SessionActive}
	assert.Equal(t, UserInfo{ID: 7, Username: "admin", SessionStatus: SessionActive}, u.Info())
}
