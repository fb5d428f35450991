package asf

import (
	"github.com/google/uuid"
)

// GUID is an ASF object identifier in its on-disk byte order.
type GUID [16]byte

// mustGUID converts the canonical string form to the on-disk layout, where
// the first three fields are little-endian.
func mustGUID(s string) GUID {
	u := uuid.MustParse(s)
	var g GUID
	copy(g[:], u[:])
	g[0], g[1], g[2], g[3] = g[3], g[2], g[1], g[0]
	g[4], g[5] = g[5], g[4]
	g[6], g[7] = g[7], g[6]
	return g
}

// String returns the canonical form.
func (g GUID) String() string {
	var u uuid.UUID
	copy(u[:], g[:])
	u[0], u[1], u[2], u[3] = u[3], u[2], u[1], u[0]
	u[4], u[5] = u[5], u[4]
	u[6], u[7] = u[7], u[6]
	return u.String()
}

var (
	guidHeader          = mustGUID("75B22630-668E-11CF-A6D9-00AA0062CE6C")
	guidContentDesc     = mustGUID("75B22633-668E-11CF-A6D9-00AA0062CE6C")
	guidExtendedContent = mustGUID("D2D0A440-E307-11D2-97F0-00A0C95EA850")
	guidHeaderExtension = mustGUID("5FBF03B5-A92E-11CF-8EE3-00C00C205365")
	guidMetadata        = mustGUID("C5F8CBEA-5BAF-4877-8467-AA8C44FA4CCA")
	guidMetadataLibrary = mustGUID("44231C94-9498-49D1-A141-1D134E457054")
)
