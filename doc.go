/*
Package phonebook contains a flat-file store of fixed-width slots, each
holding one name/number/type entry, kept sorted by name on disk.

Data Structure Documentation

File

A file is a series of slots without header or footer. Its length is always
a whole multiple of the record size (64 bytes by default).

    File layout:
    +--------+--------+---------+--------+
    | slot 0 | slot 1 |   ...   | slot n |
    +--------+--------+---------+--------+

Slots are ordered by name, ascending. Lookups binary search over slot
indices and need O(log N) slot reads. Inserts shift the slots sorting
after the new name one slot towards the end of the file, starting with
the last slot; slots before the insertion point are not rewritten.

Slot

A slot holds UTF-8 text, with fields joined by commas and right-padded
with spaces to the record size.

    +------+---+--------+---+------+-------------------+
    | name | , | number | , | type | padding (' ' ...) |
    +------+---+--------+---+------+-------------------+

Fields must not contain commas. Padding is trimmed from the last field
only.
*/
package phonebook
