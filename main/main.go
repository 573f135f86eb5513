package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/tinystr"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	for i := 0; i < 10000; i++ {
		s := tinystr.FromString("Hello World!")
		s.PushString(fmt.Sprintf(" iteration %d with enough padding to promote", i))
		s.Truncate(12)
		s.Shrink()
		c := s.Clone()
		c.Release()
		s.Release()
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
