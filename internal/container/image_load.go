package container

import (
	"errors"
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"
)

// imageDocument is the YAML or JSON form of an Image:
//
//	descriptor: postgres:11-alpine
//	env:
//	  POSTGRES_PASSWORD: secret
//	args: ["-c", "fsync=off"]
//	mounts:
//	  - type: tmpfs
//	    target: /var/lib/postgresql/data
//	network: test-net
//	waitFor:
//	  message: database system is ready to accept connections
//	  stream: stderr
//	  deadline: 20s
type imageDocument struct {
	Descriptor string              `json:"descriptor"`
	Env        map[string]string   `json:"env,omitempty"`
	Args       []string            `json:"args,omitempty"`
	Mounts     []map[string]string `json:"mounts,omitempty"`
	Network    string              `json:"network,omitempty"`
	WaitFor    *waitForDocument    `json:"waitFor,omitempty"`
}

type waitForDocument struct {
	Message  string `json:"message"`
	Stream   string `json:"stream,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// LoadImage parses an image document. Unknown fields are rejected.
func LoadImage(data []byte) (Image, error) {
	var doc imageDocument
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return Image{}, fmt.Errorf("failed to parse image document: %w", err)
	}
	if doc.Descriptor == "" {
		return Image{}, errors.New("image document has no descriptor")
	}

	img := NewImage(doc.Descriptor)
	for k, v := range doc.Env {
		img = img.WithEnvVar(k, v)
	}
	img = img.WithArgs(doc.Args...)
	for _, m := range doc.Mounts {
		img = img.WithMount(m)
	}
	if doc.Network != "" {
		img = img.WithNetwork(doc.Network)
	}

	if doc.WaitFor != nil {
		w, err := doc.WaitFor.toWaitFor()
		if err != nil {
			return Image{}, err
		}
		img = img.WithWaitFor(w)
	}
	return img, nil
}

// LoadImageFile reads an image document template from path, renders it
// with values and parses the result.
func LoadImageFile(path string, values map[string]string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image document %s: %w", path, err)
	}
	img, err := LoadImageTemplate(data, values)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func (d *waitForDocument) toWaitFor() (WaitFor, error) {
	if d.Message == "" {
		return WaitFor{}, errors.New("waitFor requires a message")
	}

	stream := StreamStdout
	if d.Stream != "" {
		s, err := ParseStream(d.Stream)
		if err != nil {
			return WaitFor{}, fmt.Errorf("waitFor: %w", err)
		}
		stream = s
	}

	var deadline time.Duration
	if d.Deadline != "" {
		v, err := time.ParseDuration(d.Deadline)
		if err != nil {
			return WaitFor{}, fmt.Errorf("waitFor: invalid deadline %q: %w", d.Deadline, err)
		}
		if v < 0 {
			return WaitFor{}, fmt.Errorf("waitFor: negative deadline %q", d.Deadline)
		}
		deadline = v
	}

	if stream == StreamStderr {
		return MessageOnStderr(d.Message, deadline), nil
	}
	return MessageOnStdout(d.Message, deadline), nil
}
