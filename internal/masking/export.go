package masking

import "strings"

// ExportKind resolves a column name with the looser keyword rules used when
// exporting sample data. It differs from Classify: "company" is the only name
// exclusion and "ip" anywhere in the column wins once address is ruled out.
func ExportKind(column string) Kind {
	c := strings.ToLower(column)

	switch {
	case strings.Contains(c, "name") && !strings.Contains(c, "company"):
		return KindName
	case strings.Contains(c, "email"):
		return KindEmail
	case strings.Contains(c, "phone"):
		return KindPhone
	case strings.Contains(c, "address") && !strings.Contains(c, "ip"):
		return KindAddress
	case strings.Contains(c, "ip"):
		return KindIP
	case strings.Contains(c, "device"):
		return KindDevice
	}
	return KindNone
}

// ExportValue masks v for export when masked is set, otherwise it returns the
// raw value as text.
func ExportValue(v any, column string, masked bool) string {
	s := stringify(v)
	if !masked {
		return s
	}
	return Apply(ExportKind(column), s)
}
