// Package masking redacts personally identifiable values for display and export.
package masking

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind is the PII category a field label resolves to.
type Kind string

const (
	KindNone    Kind = "none"
	KindName    Kind = "name"
	KindEmail   Kind = "email"
	KindPhone   Kind = "phone"
	KindAddress Kind = "address"
	KindIP      Kind = "ip"
	KindDevice  Kind = "device"
	KindSSN     Kind = "ssn"
)

// Name keeps the first character: "John" -> "J***".
func Name(name string) string {
	if name == "" {
		return name
	}
	return firstRunes(name, 1) + "***"
}

// Email keeps the first two characters of the local part and the domain.
// Values without "@" are returned unchanged.
func Email(email string) string {
	if !strings.Contains(email, "@") {
		return email
	}
	parts := strings.Split(email, "@")
	local, domain := parts[0], parts[1]
	if len([]rune(local)) <= 2 {
		return firstRunes(local, 1) + "***@" + domain
	}
	return firstRunes(local, 2) + "***@" + domain
}

// Phone keeps the last four digits: "***-***-1234". Inputs with fewer than
// four digits are returned unchanged.
func Phone(phone string) string {
	if phone == "" {
		return phone
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) < 4 {
		return phone
	}
	return "***-***-" + digits[len(digits)-4:]
}

// Address keeps the leading token (the house number) and replaces the rest.
func Address(address string) string {
	if address == "" {
		return address
	}
	number, _, _ := strings.Cut(address, " ")
	return number + " *** Street"
}

// IPAddress keeps the first and last octet of a dotted quad. Anything that
// does not split into exactly four parts is returned unchanged.
func IPAddress(ip string) string {
	if ip == "" {
		return ip
	}
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return ip
	}
	return fmt.Sprintf("%s.***.***.%s", parts[0], parts[3])
}

// DeviceID keeps the first eight characters. SSNs reuse this rule.
func DeviceID(id string) string {
	if id == "" {
		return id
	}
	return firstRunes(id, 8) + "***"
}

// Classify resolves a field label to a PII kind. Matching is substring based
// on the label lowercased with whitespace and underscores removed, with
// explicit exclusions for labels that merely contain a keyword.
func Classify(label string) Kind {
	t := normalizeLabel(label)

	switch {
	case strings.Contains(t, "name") && !strings.Contains(t, "username") && !strings.Contains(t, "schoolname"):
		return KindName
	case strings.Contains(t, "email"):
		return KindEmail
	case strings.Contains(t, "phone") || strings.Contains(t, "mobile"):
		return KindPhone
	case (strings.Contains(t, "address") || strings.Contains(t, "street")) &&
		!containsAny(t, "city", "state", "zip", "postal", "ipaddress"):
		return KindAddress
	case strings.Contains(t, "ipaddress") || t == "ip":
		return KindIP
	case strings.Contains(t, "deviceid") || strings.Contains(t, "maid") ||
		(strings.Contains(t, "device") && strings.Contains(t, "id")) || strings.Contains(t, "cookie"):
		return KindDevice
	case strings.Contains(t, "socialsecurity") || strings.Contains(t, "ssn"):
		return KindSSN
	}
	return KindNone
}

// Value masks v according to the kind its field label resolves to. Empty
// values pass through and labels with no PII kind return the trimmed value.
// Value never fails.
func Value(v any, label string) string {
	s := stringify(v)
	if s == "" {
		return s
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return Apply(Classify(label), s)
}

// Apply masks s with the rule for kind.
func Apply(kind Kind, s string) string {
	switch kind {
	case KindName:
		return Name(s)
	case KindEmail:
		return Email(s)
	case KindPhone:
		return Phone(s)
	case KindAddress:
		return Address(s)
	case KindIP:
		return IPAddress(s)
	case KindDevice, KindSSN:
		return DeviceID(s)
	}
	return s
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func normalizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, label)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
