package cmd

import (
	"strconv"
	"strings"

	"emberdb/internal/config"
	"emberdb/internal/resp"
)

// cmdInfo replies with the trimmed replication section spec §4.6
// requires: role, master_replid (master only), master_repl_offset.
func cmdInfo(s *Session, args []resp.Value) (resp.Value, error) {
	settings := s.App.Settings
	var b strings.Builder
	b.WriteString("# Replication\n")
	b.WriteString("role:" + settings.InstanceType.String() + "\n")
	if settings.InstanceType == config.Master {
		b.WriteString("master_replid:" + settings.MasterReplID + "\n")
	}
	offset := settings.MasterReplOffset
	if s.App.Repl != nil {
		offset = s.App.Repl.Offset()
	}
	b.WriteString("master_repl_offset:" + strconv.FormatInt(offset, 10) + "\n")
	return resp.Str3(b.String()), nil
}
