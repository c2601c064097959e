package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tbrandt/draftkit/go/internal/resolver"
	"github.com/tbrandt/draftkit/go/internal/roster"
	"github.com/tbrandt/draftkit/go/internal/session"
)

// runREPL drives the interactive draft loop: render the situation, read one
// command, apply it, repeat. Rejected commands never mutate state, so the
// loop just reports and re-prompts.
func runREPL(ctx context.Context, sess *session.Session, numRecs int, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Draft assistant ready. Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		renderSituation(out, sess, numRecs)
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		command, arg := splitCommand(line)

		switch command {
		case "draft":
			handleDraft(ctx, out, sess, arg, session.TeamMine)
		case "mark-other":
			handleDraft(ctx, out, sess, arg, session.TeamOther)
		case "undo":
			handleUndo(ctx, out, sess)
		case "drop":
			handleDrop(ctx, out, sess, arg)
		case "save":
			if err := sess.Save(); err != nil {
				fmt.Fprintf(out, "Save failed: %v\n", err)
			} else {
				fmt.Fprintln(out, "Draft state saved.")
			}
		case "load-backup":
			handleLoadBackup(out, scanner, sess)
		case "status":
			renderStatus(out, sess)
		case "help":
			renderHelp(out)
		case "quit", "exit":
			fmt.Fprintln(out, "Good luck out there.")
			return nil
		default:
			fmt.Fprintf(out, "Unknown command %q. Type 'help' for commands.\n", command)
		}
	}
}

func splitCommand(line string) (command, arg string) {
	parts := strings.SplitN(line, " ", 2)
	command = strings.ToLower(parts[0])
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return command, arg
}

func handleDraft(ctx context.Context, out io.Writer, sess *session.Session, arg string, team session.Team) {
	if arg == "" {
		fmt.Fprintln(out, "Usage: draft <player name>")
		return
	}

	result, err := sess.DraftPlayer(ctx, arg, team)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrAlreadyDrafted):
			fmt.Fprintf(out, "Already drafted: %v\n", err)
		case errors.Is(err, session.ErrPositionNotInLeague):
			fmt.Fprintf(out, "Not draftable in this league: %v\n", err)
		case errors.Is(err, roster.ErrRosterFull):
			fmt.Fprintln(out, "Roster is full. Drop someone first or mark the pick for another team.")
		default:
			fmt.Fprintf(out, "Pick failed: %v\n", err)
		}
		return
	}

	switch result.Outcome.Kind {
	case resolver.KindAmbiguous:
		fmt.Fprintln(out, "Multiple players match:")
		for _, c := range result.Outcome.Candidates {
			fmt.Fprintf(out, "  %s (%s, %s)\n", c.Name, c.Position, c.Team)
		}
		fmt.Fprintln(out, "Re-enter the full name.")
	case resolver.KindNotFound:
		fmt.Fprintf(out, "No player found for %q.\n", arg)
		if len(result.Outcome.Suggestions) > 0 {
			fmt.Fprintln(out, "Did you mean:")
			for _, s := range result.Outcome.Suggestions {
				fmt.Fprintf(out, "  %s (%s, %s)\n", s.Name, s.Position, s.Team)
			}
		}
	case resolver.KindResolved:
		if team == session.TeamMine {
			fmt.Fprintf(out, "Pick #%d: %s -> slot %s\n", result.Pick, result.Player, result.Slot)
		} else {
			fmt.Fprintf(out, "Pick #%d: %s (other team)\n", result.Pick, result.Player)
		}
		if result.SaveErr != nil {
			fmt.Fprintln(out, "Warning: state save failed, pick kept in memory. Run 'save' to retry.")
		}
	}
}

func handleUndo(ctx context.Context, out io.Writer, sess *session.Session) {
	undone, err := sess.UndoLastPick(ctx)
	if err != nil {
		if errors.Is(err, session.ErrUndoNotAllowed) {
			fmt.Fprintf(out, "Cannot undo: %v\n", err)
		} else {
			fmt.Fprintf(out, "Undo failed: %v\n", err)
		}
		return
	}
	fmt.Fprintf(out, "Undid pick #%d (%s).\n", undone.Pick, undone.Player)
}

func handleDrop(ctx context.Context, out io.Writer, sess *session.Session, arg string) {
	if arg == "" {
		fmt.Fprintln(out, "Usage: drop <player name>")
		return
	}
	dropped, err := sess.DropPlayer(ctx, arg)
	if err != nil {
		if errors.Is(err, session.ErrNotOnRoster) {
			fmt.Fprintf(out, "Not on your roster: %v\n", err)
		} else {
			fmt.Fprintf(out, "Drop failed: %v\n", err)
		}
		return
	}
	fmt.Fprintf(out, "Dropped %s (slot %s freed).\n", dropped.Player, dropped.Slot)
}

func handleLoadBackup(out io.Writer, scanner *bufio.Scanner, sess *session.Session) {
	backups, err := sess.ListBackups(5)
	if err != nil {
		fmt.Fprintf(out, "Could not list backups: %v\n", err)
		return
	}
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups available.")
		return
	}

	fmt.Fprintln(out, "Available backups (newest first):")
	for i, b := range backups {
		fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, b.Name, b.ModTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprint(out, "Restore which? (number, blank to cancel) > ")

	if !scanner.Scan() {
		return
	}
	choice := strings.TrimSpace(scanner.Text())
	if choice == "" {
		fmt.Fprintln(out, "Cancelled.")
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(backups) {
		fmt.Fprintln(out, "Invalid selection.")
		return
	}

	if err := sess.RestoreBackup(backups[idx-1].Name); err != nil {
		fmt.Fprintf(out, "Restore failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Restored %s.\n", backups[idx-1].Name)
}

func renderSituation(out io.Writer, sess *session.Session, numRecs int) {
	fmt.Fprintf(out, "\n=== Pick %d (round %d of %d) ===\n",
		sess.CurrentPick(), sess.CurrentRound(), sess.TotalRounds())

	needs := sess.Needs()
	if len(needs.Critical) > 0 {
		fmt.Fprintf(out, "Critical needs: %s\n", strings.Join(needs.Critical, ", "))
	}
	if len(needs.Important) > 0 {
		fmt.Fprintf(out, "Flex open: %s\n", strings.Join(needs.Important, ", "))
	}
	fmt.Fprintf(out, "Bench open: %d\n", len(needs.Depth))

	recs := sess.Recommendations(numRecs)
	if len(recs) == 0 {
		fmt.Fprintln(out, "No recommendations available.")
		return
	}
	fmt.Fprintln(out, "Recommendations:")
	for i, r := range recs {
		fmt.Fprintf(out, "  %d. [%s] %s (%s, %s) tier %d, adp %.1f, score %.1f\n",
			i+1, r.Verdict, r.Player, r.Position, r.Team, r.Tier, r.ADP, r.TotalScore)
	}
}

func renderStatus(out io.Writer, sess *session.Session) {
	status := sess.Status()
	fmt.Fprintf(out, "Pick %d, round %d of %d. %d players drafted.\n",
		status.CurrentPick, status.CurrentRound, status.TotalRounds, status.DraftedCount)

	if len(status.MyTeam) == 0 {
		fmt.Fprintln(out, "My team: (empty)")
	} else {
		fmt.Fprintln(out, "My team:")
		for _, p := range status.MyTeam {
			fmt.Fprintf(out, "  %-8s %s (%s, pick #%d)\n", p.Slot, p.Player, p.Position, p.Pick)
		}
	}
	if status.RosterFull {
		fmt.Fprintln(out, "Roster is full.")
	}
	if len(status.RecentPicks) > 0 {
		fmt.Fprintf(out, "Recent picks: %s\n", strings.Join(status.RecentPicks, ", "))
	}
}

func renderHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  draft <name>       record my pick
  mark-other <name>  record another team's pick
  undo               undo my most recent pick
  drop <name>        drop a rostered player (pick numbering untouched)
  save               save draft state now
  load-backup        restore a previous snapshot
  status             show draft status
  quit               exit`)
}
