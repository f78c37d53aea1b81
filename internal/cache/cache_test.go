package cache

import "testing"

func TestPutAndGetRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer store.Close()

	key := Key("ex:s ex:p ex:o .", "turtle", "http://example.org/")
	if err := store.Put(key, []byte("<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n")); err != nil {
		t.Fatalf("failed to put: %v", err)
	}

	got, err := store.Get(key)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	want := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGetMissReturnsErrNotFound(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer store.Close()

	key := Key("never put", "turtle", "http://example.org/")
	if _, err := store.Get(key); err != ErrNotFound {
		t.Errorf("Get on missing key = %v, want ErrNotFound", err)
	}
}

func TestKeyDependsOnAllThreeInputs(t *testing.T) {
	base := Key("same input", "turtle", "http://example.org/")

	if Key("different input", "turtle", "http://example.org/") == base {
		t.Error("Key should differ when the input text differs")
	}
	if Key("same input", "trig", "http://example.org/") == base {
		t.Error("Key should differ when the dialect differs")
	}
	if Key("same input", "turtle", "http://other.example/") == base {
		t.Error("Key should differ when the base IRI differs")
	}
	if Key("same input", "turtle", "http://example.org/") != base {
		t.Error("Key should be deterministic for identical inputs")
	}
}
