// Command trapcode drives the trapcode package from the shell, one
// pipeline stage per subcommand: generate a key pair, shard and
// erasure-code a file, encode the shards under a key, decode a
// (possibly incomplete) set of encoded shards, and recover the original
// file from the decoded remainder.
package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/urfave/cli"

	"github.com/lx/trapcode"
)

func main() {
	app := cli.NewApp()
	app.Name = "trapcode"
	app.Usage = "leakage-resilient, erasure-coded file encoding"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:  "genkey",
			Usage: "generate a fresh encoding/decoding key pair",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out", Value: "trapcode.key", Usage: "path to write the encoding key"},
				cli.StringFlag{Name: "pub", Value: "trapcode.pub", Usage: "path to write the decoding key"},
			},
			Action: genkeyCommand,
		},
		{
			Name:  "shard",
			Usage: "split and erasure-code a file into a plaintext shard container",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Usage: "input file path"},
				cli.StringFlag{Name: "out", Usage: "output shard container path"},
				cli.IntFlag{Name: "expansion", Value: 2, Usage: "number of parity shards to add"},
			},
			Action: shardCommand,
		},
		{
			Name:  "encode",
			Usage: "apply the trapdoor permutation to every shard in a container",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "key", Value: "trapcode.key", Usage: "encoding key path"},
				cli.StringFlag{Name: "in", Usage: "input shard container path"},
				cli.StringFlag{Name: "out", Usage: "output container path"},
				cli.IntFlag{Name: "workers", Value: runtime.NumCPU(), Usage: "number of concurrent encoding workers"},
			},
			Action: encodeCommand,
		},
		{
			Name:  "decode",
			Usage: "invert the trapdoor permutation on every shard in a container",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "key", Value: "trapcode.pub", Usage: "decoding key path"},
				cli.StringFlag{Name: "in", Usage: "input container path (may hold fewer than the full shard set)"},
				cli.StringFlag{Name: "out", Usage: "output container path"},
				cli.IntFlag{Name: "workers", Value: runtime.NumCPU(), Usage: "number of concurrent decoding workers"},
			},
			Action: decodeCommand,
		},
		{
			Name:  "recover",
			Usage: "erasure-decode a shard container and reassemble the original file",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Usage: "input shard container path"},
				cli.StringFlag{Name: "out", Usage: "output file path"},
			},
			Action: recoverCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func genkeyCommand(c *cli.Context) error {
	log.Println("generating RSA modulus, this takes a few seconds")
	key, err := trapcode.NewEncodingKey()
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	if err := os.WriteFile(c.String("out"), key.Serialize(), 0600); err != nil {
		return fmt.Errorf("writing encoding key: %w", err)
	}
	if err := os.WriteFile(c.String("pub"), key.Decoding().Serialize(), 0644); err != nil {
		return fmt.Errorf("writing decoding key: %w", err)
	}

	log.Println("wrote", c.String("out"), "and", c.String("pub"))
	return nil
}

func shardCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	f, err := trapcode.NewFile(data)
	if err != nil {
		return fmt.Errorf("sharding input: %w", err)
	}

	header, shards, err := f.Shards(c.Int("expansion"))
	if err != nil {
		return fmt.Errorf("erasure coding: %w", err)
	}

	out, err := marshalContainer(header, shards)
	if err != nil {
		return fmt.Errorf("building output container: %w", err)
	}
	if err := os.WriteFile(c.String("out"), out, 0644); err != nil {
		return fmt.Errorf("writing output container: %w", err)
	}

	log.Printf("wrote %d shards to %s", len(shards), c.String("out"))
	return nil
}

func encodeCommand(c *cli.Context) error {
	keyBytes, err := os.ReadFile(c.String("key"))
	if err != nil {
		return fmt.Errorf("reading encoding key: %w", err)
	}
	key, err := trapcode.DeserializeEncodingKey(keyBytes)
	if err != nil {
		return fmt.Errorf("parsing encoding key: %w", err)
	}

	in, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("reading input container: %w", err)
	}
	header, shards, err := unmarshalContainer(in)
	if err != nil {
		return fmt.Errorf("parsing input container: %w", err)
	}

	workers := c.Int("workers")
	if workers < 1 {
		workers = 1
	}
	log.Printf("encoding %d shards across %d workers", len(shards), workers)

	out := make([]trapcode.Shard, len(shards))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workerKey := key.Clone()
			for i := range jobs {
				es := trapcode.Pack(shards[i])
				workerKey.Encode(&es)
				out[i] = trapcode.Unpack(es)
			}
		}()
	}
	for i := range shards {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	blob, err := marshalContainer(header, out)
	if err != nil {
		return fmt.Errorf("building output container: %w", err)
	}
	if err := os.WriteFile(c.String("out"), blob, 0644); err != nil {
		return fmt.Errorf("writing output container: %w", err)
	}

	log.Println("wrote", c.String("out"))
	return nil
}

func decodeCommand(c *cli.Context) error {
	keyBytes, err := os.ReadFile(c.String("key"))
	if err != nil {
		return fmt.Errorf("reading decoding key: %w", err)
	}
	dk, err := trapcode.DeserializeDecodingKey(keyBytes)
	if err != nil {
		return fmt.Errorf("parsing decoding key: %w", err)
	}

	in, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("reading input container: %w", err)
	}
	header, shards, err := unmarshalContainer(in)
	if err != nil {
		return fmt.Errorf("parsing input container: %w", err)
	}

	workers := c.Int("workers")
	if workers < 1 {
		workers = 1
	}
	log.Printf("decoding %d shards across %d workers", len(shards), workers)

	out := make([]trapcode.Shard, len(shards))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workerKey := dk.Clone()
			for i := range jobs {
				es := trapcode.Pack(shards[i])
				workerKey.Decode(&es)
				out[i] = trapcode.Unpack(es)
			}
		}()
	}
	for i := range shards {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	blob, err := marshalContainer(header, out)
	if err != nil {
		return fmt.Errorf("building output container: %w", err)
	}
	if err := os.WriteFile(c.String("out"), blob, 0644); err != nil {
		return fmt.Errorf("writing output container: %w", err)
	}

	log.Println("wrote", c.String("out"))
	return nil
}

func recoverCommand(c *cli.Context) error {
	in, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("reading input container: %w", err)
	}
	header, shards, err := unmarshalContainer(in)
	if err != nil {
		return fmt.Errorf("parsing input container: %w", err)
	}

	f, err := trapcode.Reconstruct(header, shards)
	if err != nil {
		return fmt.Errorf("reconstructing file: %w", err)
	}

	if err := os.WriteFile(c.String("out"), f.Unpack(), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	log.Println("wrote", c.String("out"))
	return nil
}

// marshalContainer lays out a shard set on disk as:
//
//	[8 bytes length][2 bytes shard count n][n * (2 bytes idx, ShardSize bytes data)]
//
// This is a plain container for the CLI's own use, not part of the
// package's wire format proper (see key.go for that).
func marshalContainer(header trapcode.Header, shards []trapcode.Shard) ([]byte, error) {
	out := make([]byte, 0, 10+len(shards)*(2+trapcode.ShardSize))

	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], header.Length)
	out = append(out, lenBuf[:]...)

	var countBuf [2]byte
	binary.BigEndian.PutUint16(countBuf[:], uint16(len(shards)))
	out = append(out, countBuf[:]...)

	for _, s := range shards {
		var idxBuf [2]byte
		binary.BigEndian.PutUint16(idxBuf[:], s.Idx)
		out = append(out, idxBuf[:]...)
		out = append(out, s.Data[:]...)
	}
	return out, nil
}

func unmarshalContainer(data []byte) (trapcode.Header, []trapcode.Shard, error) {
	if len(data) < 10 {
		return trapcode.Header{}, nil, fmt.Errorf("container too short")
	}

	header := trapcode.Header{Length: binary.BigEndian.Uint64(data[:8])}
	count := int(binary.BigEndian.Uint16(data[8:10]))

	const recordSize = 2 + trapcode.ShardSize
	rest := data[10:]
	if len(rest) != count*recordSize {
		return trapcode.Header{}, nil, fmt.Errorf("container shard count mismatch")
	}

	shards := make([]trapcode.Shard, count)
	for i := 0; i < count; i++ {
		rec := rest[i*recordSize : (i+1)*recordSize]
		var s trapcode.Shard
		s.Idx = binary.BigEndian.Uint16(rec[:2])
		copy(s.Data[:], rec[2:])
		shards[i] = s
	}
	return header, shards, nil
}
