package models

// Channel is the delivery channel of a one-time code
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// OTPType is the verification type understood by the identity backend
type OTPType string

const (
	OTPTypeMagicLink OTPType = "magiclink"
	OTPTypeSMS       OTPType = "sms"
)

// Identifier addresses a user for passwordless flows, either by email or by phone
type Identifier struct {
	Channel Channel
	Value   string
}

// ByEmail builds an email identifier
func ByEmail(email string) Identifier {
	return Identifier{Channel: ChannelEmail, Value: email}
}

// ByPhone builds a phone identifier
func ByPhone(phone string) Identifier {
	return Identifier{Channel: ChannelPhone, Value: phone}
}

// ResolveIdentifier picks the identifier from optional email/phone inputs.
// Email wins when both are set. ok is false when neither is set.
func ResolveIdentifier(email, phone string) (Identifier, bool) {
	switch {
	case email != "":
		return ByEmail(email), true
	case phone != "":
		return ByPhone(phone), true
	default:
		return Identifier{}, false
	}
}

// OTPType maps the channel to the backend verification type
func (i Identifier) OTPType() OTPType {
	if i.Channel == ChannelPhone {
		return OTPTypeSMS
	}
	return OTPTypeMagicLink
}
