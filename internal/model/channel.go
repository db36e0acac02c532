package model

import (
	"fmt"
	"slices"
	"strings"
)

// Channel is an audience a schema or operation is visible to. Serialized as
// the "x-exposure" extension, a comma-separated list.
type Channel string

const (
	ChannelInternet Channel = "internet"
	ChannelOpenAPI  Channel = "openApi"
	ChannelExtranet Channel = "extranet"
)

// ExposureExtension is the literal extension key used on the wire. External
// consumers read this key verbatim; do not rename or namespace it.
const ExposureExtension = "x-exposure"

// Channels returns all valid channels in canonical order.
func Channels() []Channel {
	return []Channel{ChannelInternet, ChannelOpenAPI, ChannelExtranet}
}

// ChannelSet is a set of channels kept deduplicated and in canonical order.
// The zero value is the empty set.
type ChannelSet []Channel

// NewChannelSet builds a set from the given channels, dropping duplicates.
func NewChannelSet(channels ...Channel) ChannelSet {
	var set ChannelSet
	for _, c := range Channels() {
		if slices.Contains(channels, c) {
			set = append(set, c)
		}
	}
	return set
}

// ParseChannels parses a comma-separated channel list. Blank entries are
// skipped; unknown names are an error.
func ParseChannels(s string) (ChannelSet, error) {
	var channels []Channel
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c := Channel(part)
		if !slices.Contains(Channels(), c) {
			return nil, fmt.Errorf("unknown channel %q (valid: internet, openApi, extranet)", part)
		}
		channels = append(channels, c)
	}
	return NewChannelSet(channels...), nil
}

func (s ChannelSet) Has(c Channel) bool {
	return slices.Contains(s, c)
}

func (s ChannelSet) IsEmpty() bool {
	return len(s) == 0
}

// String renders the set as the comma-separated wire form.
func (s ChannelSet) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

func (s ChannelSet) Clone() ChannelSet {
	return slices.Clone(s)
}

func (s ChannelSet) Equal(other ChannelSet) bool {
	return slices.Equal(s, other)
}
