package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordPayload struct {
	Password string `validate:"required,password"`
}

func TestPasswordRule(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all classes present", "Sup3r$ecret", true},
		{"too short", "Ab1$x", false},
		{"no uppercase", "sup3r$ecret", false},
		{"no digit", "Super$ecret", false},
		{"no special", "Sup3rSecret", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Check(&passwordPayload{Password: tc.password})
			if tc.valid {
				assert.Nil(t, errs)
			} else {
				assert.Contains(t, errs, "password")
			}
		})
	}
}
