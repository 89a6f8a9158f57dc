package smartlife_cloud

type capabilitySource int

const (
	sourceStatusRange capabilitySource = iota
	sourceFunction
	sourceStatus
)

// searchOrder builds the dictionary precedence for a lookup. status_range
// wins over function unless the caller asks for the writable schema.
// The status dictionary widens the pool only for bare-code queries: its
// entries carry no declared type, so they cannot satisfy a typed lookup.
func searchOrder(preferFunction, includeStatus bool) []capabilitySource {
	order := []capabilitySource{sourceStatusRange, sourceFunction}
	if preferFunction {
		order = []capabilitySource{sourceFunction, sourceStatusRange}
	}
	if includeStatus {
		order = append(order, sourceStatus)
	}
	return order
}

// lookupSpec returns the declared type and value-domain blob of code in one
// capability dictionary. A status hit reports presence with no schema.
func (d *CustomerDevice) lookupSpec(src capabilitySource, code DPCode) (DPType, string, bool) {
	switch src {
	case sourceStatusRange:
		if spec, ok := d.StatusRange[code]; ok {
			return spec.Type, spec.Values, true
		}
	case sourceFunction:
		if spec, ok := d.Function[code]; ok {
			return spec.Type, spec.Values, true
		}
	case sourceStatus:
		if _, ok := d.Status[code]; ok {
			return "", "", true
		}
	}
	return "", "", false
}

// FindDPCode returns the first candidate code present on the device,
// searching each candidate through the full dictionary order before moving
// to the next candidate.
func (d *CustomerDevice) FindDPCode(preferFunction bool, codes ...DPCode) (DPCode, bool) {
	order := searchOrder(preferFunction, true)
	for _, code := range codes {
		for _, src := range order {
			if _, _, ok := d.lookupSpec(src, code); ok {
				return code, true
			}
		}
	}
	return "", false
}

// FindEnumType resolves the first candidate code declared as Enum with a
// parseable value domain. A present but unparseable descriptor is treated
// as absent and the search continues.
func (d *CustomerDevice) FindEnumType(preferFunction bool, codes ...DPCode) *EnumTypeData {
	order := searchOrder(preferFunction, false)
	for _, code := range codes {
		for _, src := range order {
			typ, values, ok := d.lookupSpec(src, code)
			if !ok || typ != DPTypeEnum {
				continue
			}
			enumType, err := ParseEnumType(code, values)
			if err != nil || enumType == nil {
				continue
			}
			return enumType
		}
	}
	return nil
}

// FindIntegerType is the Integer counterpart of FindEnumType.
func (d *CustomerDevice) FindIntegerType(preferFunction bool, codes ...DPCode) *IntegerTypeData {
	order := searchOrder(preferFunction, false)
	for _, code := range codes {
		for _, src := range order {
			typ, values, ok := d.lookupSpec(src, code)
			if !ok || typ != DPTypeInteger {
				continue
			}
			integerType, err := ParseIntegerType(code, values)
			if err != nil || integerType == nil {
				continue
			}
			return integerType
		}
	}
	return nil
}

// GetDPType returns the declared type of code without parsing its schema,
// for callers that branch on type before deciding how to resolve a value.
func (d *CustomerDevice) GetDPType(preferFunction bool, code DPCode) (DPType, bool) {
	order := searchOrder(preferFunction, false)
	for _, src := range order {
		if typ, _, ok := d.lookupSpec(src, code); ok {
			return typ, true
		}
	}
	return "", false
}
