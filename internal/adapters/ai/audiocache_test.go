package ai_test

import (
	"fmt"
	"testing"

	"github.com/phoenixgodbrain/neurogate/internal/adapters/ai"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAudioCache(t *testing.T) {
	Convey("Given an audio cache", t, func() {
		cache := ai.NewAudioCache()

		Convey("When looking up a key that was never stored", func() {
			_, ok := cache.Get(ai.Key("hello", ai.VoiceMale))
			So(ok, ShouldBeFalse)
		})

		Convey("When storing and retrieving a clip", func() {
			key := ai.Key("hello", ai.VoiceMale)
			cache.Put(key, []byte{1, 2, 3})

			data, ok := cache.Get(key)
			So(ok, ShouldBeTrue)
			So(data, ShouldResemble, []byte{1, 2, 3})
			So(cache.Len(), ShouldEqual, 1)
		})

		Convey("When storing an empty clip", func() {
			cache.Put(ai.Key("silent", ai.VoiceMale), nil)

			Convey("Then nothing should be cached", func() {
				So(cache.Len(), ShouldEqual, 0)
			})
		})

		Convey("When overwriting an existing key", func() {
			key := ai.Key("hello", ai.VoiceMale)
			cache.Put(key, []byte{1})
			cache.Put(key, []byte{2})

			data, ok := cache.Get(key)
			So(ok, ShouldBeTrue)
			So(data, ShouldResemble, []byte{2})
			So(cache.Len(), ShouldEqual, 1)
		})
	})
}

func TestAudioCache_Eviction(t *testing.T) {
	Convey("Given a cache bounded to three clips", t, func() {
		cache := ai.NewAudioCache(ai.WithCacheSize(3))

		keys := make([]string, 4)
		for i := range keys {
			keys[i] = ai.Key(fmt.Sprintf("line-%d", i), ai.VoiceFemale)
		}
		for i := 0; i < 3; i++ {
			cache.Put(keys[i], []byte{byte(i)})
		}

		Convey("When a fourth clip is stored", func() {
			cache.Put(keys[3], []byte{3})

			Convey("Then the least recently used clip should be evicted", func() {
				So(cache.Len(), ShouldEqual, 3)
				_, ok := cache.Get(keys[0])
				So(ok, ShouldBeFalse)
				_, ok = cache.Get(keys[3])
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the oldest clip is touched before inserting", func() {
			_, ok := cache.Get(keys[0])
			So(ok, ShouldBeTrue)

			cache.Put(keys[3], []byte{3})

			Convey("Then the second-oldest clip should be evicted instead", func() {
				_, ok := cache.Get(keys[0])
				So(ok, ShouldBeTrue)
				_, ok = cache.Get(keys[1])
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestAudioCache_Key(t *testing.T) {
	Convey("Given the narration cache key derivation", t, func() {
		Convey("Then identical inputs should produce identical keys", func() {
			So(ai.Key("hello", ai.VoiceMale), ShouldEqual, ai.Key("hello", ai.VoiceMale))
		})

		Convey("And different voices should produce different keys", func() {
			So(ai.Key("hello", ai.VoiceMale), ShouldNotEqual, ai.Key("hello", ai.VoiceFemale))
		})

		Convey("And different texts should produce different keys", func() {
			So(ai.Key("hello", ai.VoiceMale), ShouldNotEqual, ai.Key("goodbye", ai.VoiceMale))
		})
	})
}
