package profile

// Profile holds the per-security traits that drive stock-specific scoring
// adjustments. Every field is centered at 1.0 = market-neutral.
type Profile struct {
	VolatilityRatio float64 `yaml:"volatility_ratio" json:"volatility_ratio"`
	Beta            float64 `yaml:"beta" json:"beta"`
	Liquidity       float64 `yaml:"liquidity" json:"liquidity"`
	MarketCapTier   float64 `yaml:"market_cap_tier" json:"market_cap_tier"`
	OptionsActivity float64 `yaml:"options_activity" json:"options_activity"`
}

// Neutral returns the symbol-agnostic baseline profile. Unknown tickers
// resolve to this, so stock-specific optimization degrades gracefully.
func Neutral() Profile {
	return Profile{
		VolatilityRatio: 1.0,
		Beta:            1.0,
		Liquidity:       1.0,
		MarketCapTier:   1.0,
		OptionsActivity: 1.0,
	}
}

// IsNeutral reports whether the profile carries no stock-specific signal.
func (p Profile) IsNeutral() bool {
	return p == Neutral()
}

// Provider resolves a ticker to its market profile. Implementations must be
// safe for concurrent readers; the engine never writes through this
// interface.
type Provider interface {
	// Lookup returns the profile for symbol and whether the symbol was known.
	Lookup(symbol string) (Profile, bool)
}

// Resolve returns the profile for symbol, falling back to Neutral for
// unknown tickers or an empty symbol.
func Resolve(p Provider, symbol string) Profile {
	if p == nil || symbol == "" {
		return Neutral()
	}
	if prof, ok := p.Lookup(symbol); ok {
		return prof
	}
	return Neutral()
}

// StaticProvider serves profiles from a fixed in-memory table, populated
// once at startup and read-only afterwards.
type StaticProvider struct {
	table map[string]Profile
}

// NewStaticProvider copies the supplied table into a provider.
func NewStaticProvider(table map[string]Profile) *StaticProvider {
	cp := make(map[string]Profile, len(table))
	for sym, prof := range table {
		cp[sym] = prof
	}
	return &StaticProvider{table: cp}
}

// Lookup implements Provider.
func (sp *StaticProvider) Lookup(symbol string) (Profile, bool) {
	prof, ok := sp.table[symbol]
	return prof, ok
}

// Len returns the number of known symbols.
func (sp *StaticProvider) Len() int {
	return len(sp.table)
}

// DefaultProvider returns the built-in table of liquid optionable names.
// The numbers are coarse characterizations, not live data.
func DefaultProvider() *StaticProvider {
	return NewStaticProvider(map[string]Profile{
		"SPY":  {VolatilityRatio: 0.8, Beta: 1.0, Liquidity: 1.5, MarketCapTier: 1.5, OptionsActivity: 1.5},
		"QQQ":  {VolatilityRatio: 1.0, Beta: 1.1, Liquidity: 1.4, MarketCapTier: 1.5, OptionsActivity: 1.4},
		"AAPL": {VolatilityRatio: 1.0, Beta: 1.2, Liquidity: 1.4, MarketCapTier: 1.5, OptionsActivity: 1.3},
		"MSFT": {VolatilityRatio: 0.9, Beta: 1.1, Liquidity: 1.3, MarketCapTier: 1.5, OptionsActivity: 1.2},
		"NVDA": {VolatilityRatio: 1.5, Beta: 1.7, Liquidity: 1.3, MarketCapTier: 1.5, OptionsActivity: 1.4},
		"TSLA": {VolatilityRatio: 1.8, Beta: 2.0, Liquidity: 1.2, MarketCapTier: 1.4, OptionsActivity: 1.4},
		"AMZN": {VolatilityRatio: 1.1, Beta: 1.2, Liquidity: 1.3, MarketCapTier: 1.5, OptionsActivity: 1.2},
		"META": {VolatilityRatio: 1.2, Beta: 1.3, Liquidity: 1.2, MarketCapTier: 1.5, OptionsActivity: 1.2},
		"AMD":  {VolatilityRatio: 1.6, Beta: 1.8, Liquidity: 1.1, MarketCapTier: 1.3, OptionsActivity: 1.3},
		"KO":   {VolatilityRatio: 0.6, Beta: 0.6, Liquidity: 1.0, MarketCapTier: 1.4, OptionsActivity: 0.8},
		"JNJ":  {VolatilityRatio: 0.6, Beta: 0.5, Liquidity: 1.0, MarketCapTier: 1.4, OptionsActivity: 0.8},
		"IWM":  {VolatilityRatio: 1.2, Beta: 1.2, Liquidity: 1.3, MarketCapTier: 1.3, OptionsActivity: 1.2},
	})
}
