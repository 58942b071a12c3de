package pairedproc_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	pairedproc "github.com/wagiedev/paired-process-go"
)

func ExampleLaunch() {
	pp, err := pairedproc.Launch("echochild", []string{"echochild"})
	if err != nil {
		log.Fatal(err)
	}

	defer func() { _ = pp.Destroy(context.Background()) }()

	replies := make(chan string, 1)

	err = pp.RegisterListener(func(msg []byte) error {
		replies <- string(msg)

		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := pp.Send([]byte("PING\n")); err != nil {
		log.Fatal(err)
	}

	fmt.Print(<-replies)
}

func ExampleCodeOf() {
	_, err := pairedproc.Launch("", nil)

	fmt.Println(pairedproc.CodeOf(err))
	fmt.Println(errors.Is(err, pairedproc.ErrInvalidArgument))
	// Output:
	// invalid argument
	// true
}
