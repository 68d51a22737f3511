package model

type ChannelKind int

const (
	ChannelKindText ChannelKind = iota
	ChannelKindVoice
	ChannelKindOther
)

type Permission int64

const (
	PermissionView Permission = 1 << iota
	PermissionSend
	PermissionConnect
)

type TargetType int

const (
	TargetRole TargetType = iota
	TargetMember
)

type Overwrite struct {
	TargetID   string
	TargetType TargetType
	Allow      Permission
	Deny       Permission
}

// Equal compares only the permission bits; the target is assumed identical.
func (o Overwrite) Equal(other Overwrite) bool {
	return o.Allow == other.Allow && o.Deny == other.Deny
}

type Channel struct {
	ID         string
	Name       string
	Kind       ChannelKind
	Topic      string
	Overwrites []Overwrite
}

func (c Channel) Overwrite(targetType TargetType, targetID string) (Overwrite, bool) {
	for _, overwrite := range c.Overwrites {
		if overwrite.TargetType == targetType && overwrite.TargetID == targetID {
			return overwrite, true
		}
	}
	return Overwrite{TargetID: targetID, TargetType: targetType}, false
}

type ChannelCreate struct {
	Name       string
	Kind       ChannelKind
	Topic      string
	Overwrites []Overwrite
}

// FindChannel returns the first channel of the given kind with the exact name.
func FindChannel(channels []Channel, kind ChannelKind, name string) (Channel, bool) {
	for _, channel := range channels {
		if channel.Kind == kind && channel.Name == name {
			return channel, true
		}
	}
	return Channel{}, false
}
