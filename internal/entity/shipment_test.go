package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromCode(t *testing.T) {
	cases := []struct {
		code int
		want ShipmentStatus
	}{
		{6, ShipmentInTransit},
		{7, ShipmentDelivered},
		{8, ShipmentCancelled},
		{9, ShipmentRTO},
		{10, ShipmentRTO},
		{14, ShipmentRTO},
		{15, ShipmentPending},
		{42, ShipmentInTransit},
		{0, ShipmentUnknown},
		{999, ShipmentUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFromCode(tc.code), "code %d", tc.code)
	}
}

func TestStatusFromText(t *testing.T) {
	cases := []struct {
		status string
		want   ShipmentStatus
	}{
		{"DELIVERED", ShipmentDelivered},
		{"delivered", ShipmentDelivered},
		{"  Delivered ", ShipmentDelivered},
		// RTO takes precedence over the DELIVERED substring.
		{"RTO DELIVERED", ShipmentRTO},
		{"RTO INITIATED", ShipmentRTO},
		{"CANCELED", ShipmentCancelled},
		{"CANCELLATION REQUESTED", ShipmentCancelled},
		{"IN TRANSIT", ShipmentInTransit},
		{"OUT FOR DELIVERY", ShipmentInTransit},
		{"PICKUP SCHEDULED", ShipmentPending},
		{"", ShipmentUnknown},
		{"SOMETHING ELSE", ShipmentUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFromText(tc.status), "status %q", tc.status)
	}
}

func TestIsCancelled(t *testing.T) {
	r := &ShipmentRecord{Status: ShipmentCancelled}
	assert.True(t, r.IsCancelled())

	// Coarse status missing but the raw provider code says cancelled.
	r = &ShipmentRecord{Status: ShipmentUnknown, RawStatusCode: 8}
	assert.True(t, r.IsCancelled())

	r = &ShipmentRecord{Status: ShipmentDelivered, RawStatusCode: 7}
	assert.False(t, r.IsCancelled())
}
