// Package texts loads the localization table, read-only after load.
package texts

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Texts struct {
	data map[string]string
	log  *logrus.Logger
}

func Load(path string, log *logrus.Logger) (*Texts, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading texts file %s", path)
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(err, "parsing texts file %s", path)
	}

	return &Texts{data: data, log: log}, nil
}

// Get returns the text for key. A missing key is logged and yields an empty
// string instead of failing the conversation.
func (t *Texts) Get(key string) string {
	text, ok := t.data[key]
	if !ok {
		t.log.WithField("key", key).Error("text key not found")
	}
	return text
}
