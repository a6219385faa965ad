package analytics

import (
	"strings"

	"github.com/skupulse/skupulse-manager/internal/entity"
)

// IsCOD reports whether any payment gateway on the order is a
// cash-on-delivery gateway, matched by case-insensitive substring.
func IsCOD(o *entity.Order) bool {
	for _, gw := range o.PaymentGatewayNames {
		g := strings.ToLower(gw)
		if strings.Contains(g, "cash on delivery") || strings.Contains(g, "cod") {
			return true
		}
	}
	return false
}

// seenSet tracks processed order ids so each order is counted once per
// batch even when it is revisited per line item.
type seenSet map[int64]struct{}

// add returns true the first time an id is seen.
func (s seenSet) add(id int64) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}
