package address

// The typed addresses below share RawAddress as their representation but are
// distinct types, so an account address can't be passed where a validator
// operator address is expected. Converting between them requires an explicit
// re-wrap, e.g. ValAddress(acc.Raw()).

// AccAddress is a Cosmos Hub account address.
type AccAddress RawAddress

// ValAddress is a Cosmos Hub validator operator address.
type ValAddress RawAddress

// TerraAddress is a Terra account address.
type TerraAddress RawAddress

// TerraValAddress is a Terra validator operator address.
type TerraValAddress RawAddress

// ParseAccAddress decodes a `cosmos` address.
func ParseAccAddress(text string) (AccAddress, error) {
	raw, err := Decode(text, PrefixCosmos)
	return AccAddress(raw), err
}

func (a AccAddress) Prefix() string  { return PrefixCosmos }
func (a AccAddress) Raw() RawAddress { return RawAddress(a) }
func (a AccAddress) String() string  { return mustEncode(RawAddress(a), PrefixCosmos) }

func (a AccAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccAddress) UnmarshalText(text []byte) error {
	raw, err := Decode(string(text), PrefixCosmos)
	if err != nil {
		return err
	}
	*a = AccAddress(raw)
	return nil
}

// ParseValAddress decodes a `cosmosvaloper` address.
func ParseValAddress(text string) (ValAddress, error) {
	raw, err := Decode(text, PrefixCosmosValoper)
	return ValAddress(raw), err
}

func (a ValAddress) Prefix() string  { return PrefixCosmosValoper }
func (a ValAddress) Raw() RawAddress { return RawAddress(a) }
func (a ValAddress) String() string  { return mustEncode(RawAddress(a), PrefixCosmosValoper) }

func (a ValAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ValAddress) UnmarshalText(text []byte) error {
	raw, err := Decode(string(text), PrefixCosmosValoper)
	if err != nil {
		return err
	}
	*a = ValAddress(raw)
	return nil
}

// ParseTerraAddress decodes a `terra` address.
func ParseTerraAddress(text string) (TerraAddress, error) {
	raw, err := Decode(text, PrefixTerra)
	return TerraAddress(raw), err
}

func (a TerraAddress) Prefix() string  { return PrefixTerra }
func (a TerraAddress) Raw() RawAddress { return RawAddress(a) }
func (a TerraAddress) String() string  { return mustEncode(RawAddress(a), PrefixTerra) }

func (a TerraAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *TerraAddress) UnmarshalText(text []byte) error {
	raw, err := Decode(string(text), PrefixTerra)
	if err != nil {
		return err
	}
	*a = TerraAddress(raw)
	return nil
}

// ParseTerraValAddress decodes a `terravaloper` address.
func ParseTerraValAddress(text string) (TerraValAddress, error) {
	raw, err := Decode(text, PrefixTerraValoper)
	return TerraValAddress(raw), err
}

func (a TerraValAddress) Prefix() string  { return PrefixTerraValoper }
func (a TerraValAddress) Raw() RawAddress { return RawAddress(a) }
func (a TerraValAddress) String() string  { return mustEncode(RawAddress(a), PrefixTerraValoper) }

func (a TerraValAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *TerraValAddress) UnmarshalText(text []byte) error {
	raw, err := Decode(string(text), PrefixTerraValoper)
	if err != nil {
		return err
	}
	*a = TerraValAddress(raw)
	return nil
}

// Reencode decodes any supported address and re-encodes its bytes under prefix.
func Reencode(text string, prefix string) (string, error) {
	_, raw, err := DecodeAny(text)
	if err != nil {
		return "", err
	}
	return Encode(raw, prefix)
}
