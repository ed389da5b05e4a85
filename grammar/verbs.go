package grammar

// LoadDefaults registers the built-in verb table. The CLI calls it once at
// startup, after the action registry is populated; a malformed entry
// panics before any invocation is served.
func LoadDefaults() {
	MustRegister("list", Config{
		Symbol:       "ls",
		Desc:         "List buckets, or the objects in a bucket",
		SoftRequired: []string{"bucket"},
		Optional:     []string{"key"},
		Action:       "ls",
	})
	MustRegister("list-versions", Config{
		Symbol:       "lsv",
		Desc:         "List object versions and delete markers in a bucket",
		SoftRequired: []string{"bucket"},
		Optional:     []string{"key"},
		Action:       "lsv",
	})
	MustRegister("list-replicated", Config{
		Symbol:          "lsr",
		Desc:            "List replicated buckets, or the objects in a replicated bucket",
		Optional:        []string{"bucket"},
		PositionalOrder: []string{"bucket"},
		Action:          "lsr",
	})
	MustRegister("head", Config{
		Symbol:       "head",
		Desc:         "Retrieve info for an object",
		SoftRequired: []string{"bucket", "key"},
		Optional:     []string{"version_id"},
		Action:       "head",
	})
	MustRegister("get", Config{
		Symbol:       "get",
		Desc:         "Get an object from storage",
		SoftRequired: []string{"bucket", "key"},
		Optional:     []string{"version_id"},
		Action:       "get",
	})
	MustRegister("put", Config{
		Symbol:       "put",
		Desc:         "Put a local file into storage",
		HardRequired: []string{"file"},
		SoftRequired: []string{"bucket", "key"},
		Action:       "put",
	})
	MustRegister("copy", Config{
		Symbol:       "cp",
		Desc:         "Copy an object server-side",
		SoftRequired: []string{"bucket", "key"},
		Optional:     []string{"target_bucket", "target_key"},
		PositionalOrder: []string{
			"bucket", "key", "target_bucket", "target_key",
		},
		Action: "cp",
	})
}
