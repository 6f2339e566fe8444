package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

// Document model fields

func Identity(uri string) Field {
	return String("identity", uri)
}

func Kind(kind string) Field {
	return String("kind", kind)
}

func Ref(uri string) Field {
	return String("ref", uri)
}

func Format(name string) Field {
	return String("format", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Bytes(n int) Field {
	return Int("bytes", n)
}

func Digest(hex string) Field {
	return String("digest", hex)
}
