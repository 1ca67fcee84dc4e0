package util

// MaskPhone hides all but the first two and last two characters of a phone
// number for logging. Numbers of four characters or fewer are returned as is.
func MaskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 4 {
		return phone
	}
	return string(r[:2]) + "***" + string(r[len(r)-2:])
}
