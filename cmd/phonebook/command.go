package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bsm/phonebook"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
)

const usage = `Commands:
  put NAME NUMBER TYPE   insert or update an entry
  get NAME               print a single entry
  list [AFTER]           print entries in name order, optionally after AFTER
  len                    print the number of entries
  verify                 check every slot and the name order
  backup FILE            write a snappy compressed snapshot to FILE
  restore FILE           replace the store with a snapshot from FILE
  export FILE            write a CDB constant database to FILE
  shell                  read commands from stdin
`

var errNotFound = errors.New("not found")

type cli struct {
	store *phonebook.Store
	out   io.Writer
}

// run executes a single command.
func (c *cli) run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "put":
		if len(args) != 3 {
			return errors.New("usage: put NAME NUMBER TYPE")
		}
		return c.store.InsertOrUpdate(phonebook.Entry{Name: args[0], Number: args[1], Type: args[2]})

	case "get":
		if len(args) != 1 {
			return errors.New("usage: get NAME")
		}
		ent, ok, err := c.store.GetByName(args[0])
		if err != nil {
			return err
		} else if !ok {
			return errors.Wrap(errNotFound, args[0])
		}
		return c.print(ent)

	case "list":
		if len(args) > 1 {
			return errors.New("usage: list [AFTER]")
		}
		return c.list(args)

	case "len":
		n, err := c.store.Len()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.out, n)
		return err

	case "verify":
		n, err := c.store.Verify()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out, "ok, %d entries\n", n)
		return err

	case "backup":
		if len(args) != 1 {
			return errors.New("usage: backup FILE")
		}
		return c.backup(args[0])

	case "restore":
		if len(args) != 1 {
			return errors.New("usage: restore FILE")
		}
		return c.restore(args[0])

	case "export":
		if len(args) != 1 {
			return errors.New("usage: export FILE")
		}
		n, err := c.store.ExportCDB(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.out, "exported %d entries\n", n)
		return err

	case "help":
		_, err := io.WriteString(c.out, usage)
		return err
	}
	return errors.Errorf("unknown command %q", cmd)
}

func (c *cli) list(args []string) error {
	var iter *phonebook.Iterator
	var err error
	if len(args) == 1 {
		iter, err = c.store.IterateOrderedByNameAfter(args[0])
	} else {
		iter, err = c.store.IterateOrderedByName()
	}
	if err != nil {
		return err
	}
	defer iter.Release()

	for iter.Next() {
		if err := c.print(iter.Entry()); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *cli) backup(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "backup")
	}
	defer f.Close()

	n, err := c.store.Backup(f)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "backup")
	}
	_, err = fmt.Fprintf(c.out, "backed up %d entries\n", n)
	return err
}

func (c *cli) restore(fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return errors.Wrap(err, "restore")
	}
	defer f.Close()

	n, err := c.store.Restore(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "restored %d entries\n", n)
	return err
}

func (c *cli) print(ent phonebook.Entry) error {
	_, err := fmt.Fprintf(c.out, "%s\t%s\t%s\n", ent.Name, ent.Number, ent.Type)
	return err
}

// shell reads commands line by line until EOF or "exit". Command errors
// are reported and do not end the session, except for storage errors.
func (c *cli) shell(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		args, err := shellquote.Split(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error:", err)
			continue
		}

		if err := c.run(args); err != nil {
			if _, ok := errors.Cause(err).(*phonebook.StorageIOError); ok {
				return err
			}
			fmt.Fprintln(c.out, "error:", err)
		}
	}
}
