// Package store persists engine state snapshots in keyed storage. The codec
// is CBOR with a version envelope; the storage engine behind the KV contract
// is the host's choice.
package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/gridx-io/openclearing/core"
)

// snapshotVersion guards against decoding a snapshot written by an
// incompatible layout.
const snapshotVersion = 1

type snapshotEnvelope struct {
	Version int           `cbor:"v"`
	State   core.Snapshot `cbor:"state"`
}

// SaveSnapshot encodes the engine state and writes it under key.
func SaveSnapshot(kv KV, key string, s core.Snapshot) error {
	data, err := cbor.Marshal(snapshotEnvelope{Version: snapshotVersion, State: s})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := kv.Put(key, data); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads and decodes the engine state stored under key. The
// second return is false when no snapshot exists there.
func LoadSnapshot(kv KV, key string) (core.Snapshot, bool, error) {
	data, ok, err := kv.Get(key)
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}
	if !ok {
		return core.Snapshot{}, false, nil
	}
	var env snapshotEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return core.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Version != snapshotVersion {
		return core.Snapshot{}, false, fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	return env.State, true, nil
}
