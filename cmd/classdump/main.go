// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/jvmgo/classfile"
)

func prettyPrint(buf []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, buf, "", "\t"); err != nil {
		return string(buf)
	}
	return out.String()
}

func sniff(path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return err
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/java") || m.Is("application/java-vm") {
			return nil
		}
	}
	return fmt.Errorf("%q does not look like a Java class file (detected %s)", path, mtype)
}

func dump(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := sniff(path); err != nil {
		return err
	}

	cf, err := classfile.Open(path, &classfile.Options{})
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer cf.Close()

	if err := cf.Parse(); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out, err := json.Marshal(cf)
	if err != nil {
		return err
	}
	fmt.Println(prettyPrint(out))
	return nil
}

func roundtrip(cmd *cobra.Command, args []string) error {
	in := args[0]
	if err := sniff(in); err != nil {
		return err
	}

	cf, err := classfile.Open(in, &classfile.Options{})
	if err != nil {
		return fmt.Errorf("opening %s: %w", in, err)
	}
	defer cf.Close()

	if err := cf.Parse(); err != nil {
		return fmt.Errorf("parsing %s: %w", in, err)
	}

	data, err := cf.Write()
	if err != nil {
		return fmt.Errorf("re-encoding %s: %w", in, err)
	}

	if len(args) < 2 {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(args[1], data, 0o644)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "classdump",
		Short: "A JVM .class file parser",
		Long:  "classdump decodes and re-encodes JVM .class files for inspection and round-trip testing",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("classdump 0.0.1")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <in>",
		Short: "Dumps the parsed class file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  dump,
	}

	parseCmd := &cobra.Command{
		Use:   "parse <in> [out]",
		Short: "Parses a class file and re-encodes it, optionally to a new file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  roundtrip,
	}

	rootCmd.AddCommand(versionCmd, dumpCmd, parseCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
