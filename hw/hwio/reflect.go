package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// regInfo describes one "hwio"-tagged field found by bankGetRegs: its offset
// within the bank and a pointer to the concrete Reg8/Mem/Device/Manual.
type regInfo struct {
	offset uint16
	bank   int
	regPtr any
}

func parseTagOpts(tag string) map[string]string {
	opts := make(map[string]string)
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i := strings.IndexByte(part, '='); i >= 0 {
			opts[part[:i]] = strings.TrimSpace(part[i+1:])
		} else {
			opts[part] = ""
		}
	}
	return opts
}

func parseTagUint(opts map[string]string, key string) (uint64, bool, error) {
	raw, ok := opts[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 64)
	if err != nil {
		return 0, true, fmt.Errorf("hwio: invalid %s=%q: %w", key, raw, err)
	}
	return n, true, nil
}

// InitRegs scans bankStruct (a pointer to a struct) for fields tagged
// `hwio:"..."` and wires up their Name, reset value, read-only mask and
// rcb/wcb/pcb callbacks. It must be called once before the struct's
// registers are mapped into a Table.
func InitRegs(bankStruct any) error {
	v := reflect.ValueOf(bankStruct)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: InitRegs needs a pointer to struct, got %T", bankStruct)
	}
	root := v
	sv := v.Elem()
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTagOpts(tag)
		if err := initField(root, sv.Field(i), field.Name, opts); err != nil {
			return err
		}
	}
	return nil
}

// MustInitRegs is InitRegs, panicking on error. Register layouts are static
// program data, so a malformed tag is a programming bug, not a runtime
// condition callers should need to check for.
func MustInitRegs(bankStruct any) {
	if err := InitRegs(bankStruct); err != nil {
		panic(err)
	}
}

// bankGetRegs returns the offset-tagged fields of bankStruct belonging to
// bankNum, in declaration order, initializing each one along the way.
func bankGetRegs(bankStruct any, bankNum int) ([]regInfo, error) {
	v := reflect.ValueOf(bankStruct)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bankStruct)
	}
	root := v
	sv := v.Elem()
	st := sv.Type()

	var regs []regInfo
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTagOpts(tag)

		offset, hasOffset, err := parseTagUint(opts, "offset")
		if err != nil {
			return nil, err
		}
		if !hasOffset {
			continue
		}

		bank := 0
		if n, ok, err := parseTagUint(opts, "bank"); err != nil {
			return nil, err
		} else if ok {
			bank = int(n)
		}
		if bank != bankNum {
			continue
		}

		fv := sv.Field(i)
		if err := initField(root, fv, field.Name, opts); err != nil {
			return nil, err
		}

		regs = append(regs, regInfo{
			offset: uint16(offset),
			bank:   bank,
			regPtr: fv.Addr().Interface(),
		})
	}
	return regs, nil
}

// pcbMethodName resolves the "pcb" tag option to a method name: bare `pcb`
// binds to Peek<FIELD> (field name upper-cased), while `pcb=Name` binds to
// the literal method name given.
func pcbMethodName(opts map[string]string, upper string) (string, bool) {
	name, ok := opts["pcb"]
	if !ok {
		return "", false
	}
	if name == "" {
		return "Peek" + upper, true
	}
	return name, true
}

// initField applies the parsed tag options to a single Reg8/Mem/Device/Manual
// field and binds its rcb/wcb/pcb callbacks to sibling methods named
// Read<FIELD>/Write<FIELD>/Peek<FIELD> (field name upper-cased) on root.
func initField(root reflect.Value, fv reflect.Value, name string, opts map[string]string) error {
	upper := strings.ToUpper(name)

	switch rp := fv.Addr().Interface().(type) {
	case *Reg8:
		rp.Name = name

		if n, ok, err := parseTagUint(opts, "reset"); err != nil {
			return err
		} else if ok {
			if n > 0xFF {
				return fmt.Errorf("hwio: field %s: reset value %#x doesn't fit in a byte", name, n)
			}
			rp.Value = uint8(n)
		}

		if n, ok, err := parseTagUint(opts, "rwmask"); err != nil {
			return err
		} else if ok {
			if n > 0xFF {
				return fmt.Errorf("hwio: field %s: rwmask value %#x doesn't fit in a byte", name, n)
			}
			rp.RoMask = ^uint8(n)
		}

		if _, ok := opts["readonly"]; ok {
			rp.Flags |= ReadOnlyFlag
		}
		if _, ok := opts["writeonly"]; ok {
			rp.Flags |= WriteOnlyFlag
		}

		if _, ok := opts["rcb"]; ok {
			cb, err := bindCallback[func(uint8, bool) uint8](root, "Read"+upper)
			if err != nil {
				return err
			}
			rp.ReadCb = cb
		}
		if _, ok := opts["wcb"]; ok {
			cb, err := bindCallback[func(uint8, uint8)](root, "Write"+upper)
			if err != nil {
				return err
			}
			rp.WriteCb = cb
		}
		if mname, ok := pcbMethodName(opts, upper); ok {
			cb, err := bindCallback[func(uint8) uint8](root, mname)
			if err != nil {
				return err
			}
			rp.PeekCb = cb
		}

	case *Mem:
		rp.Name = name

		size, hasSize, err := parseTagUint(opts, "size")
		if err != nil {
			return err
		}
		vsize, hasVSize, err := parseTagUint(opts, "vsize")
		if err != nil {
			return err
		}
		if hasSize {
			rp.Data = make([]byte, size)
		}
		switch {
		case hasVSize:
			rp.VSize = int(vsize)
		case hasSize:
			rp.VSize = int(size)
		}

		if _, ok := opts["readonly"]; ok {
			rp.Flags |= MemFlag8ReadOnly
		}
		if _, ok := opts["wcb"]; ok {
			cb, err := bindCallback[func(uint16, uint8)](root, "Write"+upper)
			if err != nil {
				return err
			}
			rp.WriteCb = cb
		}

	case *Device:
		rp.Name = name
		if n, ok, err := parseTagUint(opts, "size"); err != nil {
			return err
		} else if ok {
			rp.Size = int(n)
		}
		if _, ok := opts["readonly"]; ok {
			rp.Flags |= ReadOnlyFlag
		}
		if _, ok := opts["writeonly"]; ok {
			rp.Flags |= WriteOnlyFlag
		}
		if _, ok := opts["rcb"]; ok {
			cb, err := bindCallback[func(uint16) uint8](root, "Read"+upper)
			if err != nil {
				return err
			}
			rp.ReadCb = cb
		}
		if _, ok := opts["wcb"]; ok {
			cb, err := bindCallback[func(uint16, uint8)](root, "Write"+upper)
			if err != nil {
				return err
			}
			rp.WriteCb = cb
		}
		if mname, ok := pcbMethodName(opts, upper); ok {
			cb, err := bindCallback[func(uint16) uint8](root, mname)
			if err != nil {
				return err
			}
			rp.PeekCb = cb
		}

	case *Manual:
		rp.Name = name
		if n, ok, err := parseTagUint(opts, "size"); err != nil {
			return err
		} else if ok {
			rp.Size = int(n)
		}
		if _, ok := opts["rcb"]; ok {
			cb, err := bindCallback[func(uint16, bool) uint8](root, "Read"+upper)
			if err != nil {
				return err
			}
			rp.ReadCb = cb
		}
		if _, ok := opts["wcb"]; ok {
			cb, err := bindCallback[func(uint16, uint8)](root, "Write"+upper)
			if err != nil {
				return err
			}
			rp.WriteCb = cb
		}

	default:
		return fmt.Errorf("hwio: field %s: unsupported hwio-tagged type %T", name, rp)
	}
	return nil
}

// bindCallback looks up a method by name on root and asserts its signature
// matches T exactly, surfacing a clear error instead of a reflect panic when
// a struct forgets to define the callback its tag promises.
func bindCallback[T any](root reflect.Value, methodName string) (T, error) {
	var zero T
	m := root.MethodByName(methodName)
	if !m.IsValid() {
		return zero, fmt.Errorf("hwio: missing callback method %s on %s", methodName, root.Type())
	}
	fn, ok := m.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("hwio: callback %s on %s has the wrong signature (got %s, want %T)",
			methodName, root.Type(), m.Type(), zero)
	}
	return fn, nil
}
