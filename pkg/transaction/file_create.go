package transaction

import (
	"context"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/keys"
)

// FileCreateTransaction stores a new file on the network, typically
// contract bytecode. The attached keys control who may later modify or
// delete the file.
type FileCreateTransaction struct {
	Transaction
	keys     []keys.PublicKey
	contents []byte
	fileMemo string
}

// NewFileCreateTransaction builds an empty file creation.
func NewFileCreateTransaction() *FileCreateTransaction {
	tx := &FileCreateTransaction{}
	tx.methodPath = hapi.MethodCreateFile
	tx.buildData = func() (hapi.BodyData, error) {
		body := &hapi.FileCreateBody{Contents: tx.contents, Memo: tx.fileMemo}
		if len(tx.keys) > 0 {
			kl := &hapi.KeyList{}
			for _, k := range tx.keys {
				kl.Keys = append(kl.Keys, hapi.EncodeKey(k))
			}
			body.Keys = kl
		}
		return body, nil
	}
	return tx
}

// AddKey appends a key that controls the created file.
func (tx *FileCreateTransaction) AddKey(key keys.PublicKey) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.keys = append(tx.keys, key)
	return nil
}

// SetContents sets the file's initial contents.
func (tx *FileCreateTransaction) SetContents(contents []byte) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.contents = contents
	return nil
}

// SetFileMemo attaches a memo stored with the file.
func (tx *FileCreateTransaction) SetFileMemo(memo string) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.fileMemo = memo
	return nil
}

// Execute submits the file creation and returns the node's acknowledgement.
func (tx *FileCreateTransaction) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	return tx.execute(ctx, c)
}
