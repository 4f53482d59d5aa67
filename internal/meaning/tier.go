package meaning

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Tier is one lookup strategy of the resolution chain.
type Tier string

const (
	TierRemote    Tier = "remote"
	TierExact     Tier = "exact"
	TierSubstring Tier = "substring"
	TierFuzzy     Tier = "fuzzy"
	TierToken     Tier = "token"
)

// Tiers lists every known tier.
var Tiers = []Tier{TierRemote, TierExact, TierSubstring, TierFuzzy, TierToken}

var (
	// RemoteFirst asks the remote service before the local dictionary.
	RemoteFirst = TierOrder{TierRemote, TierExact, TierSubstring, TierFuzzy, TierToken}
	// LocalFirst asks the remote service only when nothing local matches.
	LocalFirst = TierOrder{TierExact, TierSubstring, TierFuzzy, TierToken, TierRemote}

	DefaultTierOrder = RemoteFirst
)

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	name := Tier(strings.ToLower(strings.TrimSpace(s)))
	for _, tier := range Tiers {
		if tier == name {
			return tier, nil
		}
	}
	return "", fmt.Errorf("unknown tier %q, must be one of %s", s, TierOrder(Tiers).String())
}

var _ pflag.Value = (*Tier)(nil)

func (t Tier) String() string {
	return string(t)
}

func (t *Tier) Set(s string) error {
	tier, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

func (t *Tier) Type() string {
	return "tier"
}

// TierOrder is the order tiers are tried in. The generic fallback always runs after it.
type TierOrder []Tier

// ParseTierOrder parses a comma separated list of tier names, or the presets "remote-first" and "local-first".
func ParseTierOrder(s string) (TierOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remote-first":
		return append(TierOrder{}, RemoteFirst...), nil
	case "local-first":
		return append(TierOrder{}, LocalFirst...), nil
	}

	var order TierOrder
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tier, err := ParseTier(name)
		if err != nil {
			return nil, err
		}
		order = append(order, tier)
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate checks the order is not empty and has no duplicates.
func (o TierOrder) Validate() error {
	if len(o) == 0 {
		return fmt.Errorf("tier order is empty")
	}
	seen := make(map[Tier]struct{}, len(o))
	for _, tier := range o {
		if _, err := ParseTier(string(tier)); err != nil {
			return err
		}
		if _, ok := seen[tier]; ok {
			return fmt.Errorf("tier %s is listed twice", tier)
		}
		seen[tier] = struct{}{}
	}
	return nil
}

var _ pflag.Value = (*TierOrder)(nil)

func (o TierOrder) String() string {
	names := make([]string, 0, len(o))
	for _, tier := range o {
		names = append(names, string(tier))
	}
	return strings.Join(names, ",")
}

func (o *TierOrder) Set(s string) error {
	order, err := ParseTierOrder(s)
	if err != nil {
		return err
	}
	*o = order
	return nil
}

func (o *TierOrder) Type() string {
	return "tiers"
}
