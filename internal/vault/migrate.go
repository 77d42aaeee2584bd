package vault

import (
	"bytes"
	"encoding/json"
	"fmt"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
)

type document = map[string]any

// migration upgrades a document from version `from` to from+1.
type migration struct {
	from  int
	name  string
	apply func(document) error
}

var migrations = []migration{
	{from: 1, name: "add movements", apply: addMovements},
	{from: 2, name: "add opening balances", apply: addOpeningBalances},
	{from: 3, name: "canonical layout", apply: canonicalLayout},
}

// Migrate upgrades a plaintext vault document to ledger.SchemaVersion.
// Current documents are returned unchanged.
func Migrate(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document is empty")
	}

	version, err := SchemaVersionOf(doc)
	if err != nil {
		return nil, err
	}
	if version > ledger.SchemaVersion {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrUnsupportedSchema, version)
	}
	if version == ledger.SchemaVersion {
		return data, nil
	}

	for _, m := range migrations {
		if m.from != version {
			continue
		}
		if err := m.apply(doc); err != nil {
			return nil, fmt.Errorf("migrating v%d (%s): %w", m.from, m.name, err)
		}
		version++
	}

	meta := object(doc, "meta")
	delete(meta, "version")
	meta["schemaVersion"] = version

	return json.Marshal(doc)
}

// SchemaVersionOf reads meta.schemaVersion, or the legacy meta.version.
// Documents without either are version 1.
func SchemaVersionOf(doc document) (int, error) {
	meta, ok := doc["meta"].(map[string]any)
	if !ok {
		return 1, nil
	}
	raw, ok := meta["schemaVersion"]
	if !ok {
		raw, ok = meta["version"]
	}
	if !ok || raw == nil {
		return 1, nil
	}

	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid schema version %q", v)
		}
		return int(n), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("invalid schema version %v", raw)
}

// object returns doc[key] as an object, creating it when absent.
func object(doc document, key string) map[string]any {
	if m, ok := doc[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	doc[key] = m
	return m
}

// list returns doc[key] as a list of objects.
func list(doc document, key string) ([]map[string]any, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list", key)
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not an object", key, i)
		}
		out = append(out, m)
	}
	return out, nil
}

func renameKeys(m map[string]any, names map[string]string) {
	for from, to := range names {
		if v, ok := m[from]; ok {
			delete(m, from)
			m[to] = v
		}
	}
}

func addMovements(doc document) error {
	if doc["movs"] == nil {
		doc["movs"] = []any{}
	}
	return nil
}

func addOpeningBalances(doc document) error {
	accounts, err := list(doc, "cuentas")
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if _, ok := a["saldoInicial"]; !ok {
			a["saldoInicial"] = nil
		}
		if _, ok := a["fechaInicial"]; !ok {
			a["fechaInicial"] = nil
		}
	}
	return nil
}

var (
	currencyKeys = map[string]string{"name": "displayName"}
	accountKeys  = map[string]string{
		"nombre":       "name",
		"tipo":         "kind",
		"multi":        "isMultiCurrency",
		"incluyeCaja":  "includesCashBox",
		"moneda":       "currency",
		"subMonedas":   "subCurrencies",
		"saldoInicial": "openingBalance",
		"fechaInicial": "openingDate",
	}
	movementKeys = map[string]string{
		"fecha":  "date",
		"desc":   "description",
		"monto":  "amount",
		"moneda": "currency",
		"deb":    "debitAccount",
		"cred":   "creditAccount",
		"cat":    "category",
	}
)

func canonicalLayout(doc document) error {
	renameKeys(object(doc, "user"), map[string]string{"pinSet": "pinConfigured"})

	sections := []struct {
		from, to string
		keys     map[string]string
	}{
		{"monedas", "currencies", currencyKeys},
		{"cuentas", "accounts", accountKeys},
		{"movs", "movements", movementKeys},
	}
	for _, s := range sections {
		items, err := list(doc, s.from)
		if err != nil {
			return err
		}
		converted := make([]any, 0, len(items))
		for _, item := range items {
			renameKeys(item, s.keys)
			converted = append(converted, item)
		}
		delete(doc, s.from)
		doc[s.to] = converted
	}
	return nil
}
