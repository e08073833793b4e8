package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid fqdn", "nc.contoso.local", nil},
		{"valid short", "contoso-rest", nil},
		{"empty", "", errRestNameRequired},
		{"whitespace", "   ", errRestNameRequired},
		{"uppercase", "NC.Contoso.Local", errRestNameInvalid},
		{"leading hyphen", "-nc.contoso.local", errRestNameInvalid},
		{"trailing dot", "nc.contoso.local.", errRestNameInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, validateRestName(tt.input))
		})
	}
}

func TestValidateCIDR(t *testing.T) {
	assert.NoError(t, validateCIDR("10.127.132.0/25"))
	assert.Equal(t, errCIDRRequired, validateCIDR(""))
	assert.Equal(t, errCIDRInvalid, validateCIDR("10.127.132.0"))
	assert.Equal(t, errCIDRInvalid, validateCIDR("not-a-cidr"))
}

func TestValidateMAC(t *testing.T) {
	assert.NoError(t, validateMAC("00-1D-D8-B7-1C-00"))
	assert.Equal(t, errMACInvalid, validateMAC("00:1D:D8:B7:1C:00"))
	assert.Equal(t, errMACInvalid, validateMAC("001DD8B71C00"))
	assert.Equal(t, errMACInvalid, validateMAC(""))
}

func TestValidateVLAN(t *testing.T) {
	assert.NoError(t, validateVLAN(""))
	assert.NoError(t, validateVLAN("0"))
	assert.NoError(t, validateVLAN("4094"))
	assert.Equal(t, errVLANInvalid, validateVLAN("4095"))
	assert.Equal(t, errVLANInvalid, validateVLAN("-1"))
	assert.Equal(t, errVLANInvalid, validateVLAN("seven"))
}

func TestValidateHosts(t *testing.T) {
	assert.NoError(t, validateHosts("host1.contoso.local"))
	assert.NoError(t, validateHosts("host1, host2 ,host3"))
	assert.Equal(t, errHostsRequired, validateHosts(""))
	assert.Equal(t, errHostsRequired, validateHosts(" , ,"))
}

func TestOptionalValidator(t *testing.T) {
	v := optional(validateIP)
	assert.NoError(t, v(""))
	assert.NoError(t, v("10.0.0.1"))
	assert.Equal(t, errIPInvalid, v("nope"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,"))
	assert.Nil(t, splitList(""))
}
