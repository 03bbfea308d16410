// Copyright (C) 2024 coldb authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package wire implements the local stream socket's framing: a fixed
// header followed by a variable-length payload, and the CSV_TRANSFER
// sub-protocol's column metadata records.
package wire

// Status is the header's status code.
type Status uint32

const (
	IncomingQuery Status = iota
	OKDone
	OKWaitForResponse
	ServerShutdown
	CSVTransfer
	UnknownCommand
	ObjectNotFound
	IncorrectFormat
	ExecutionError
)

func (s Status) String() string {
	switch s {
	case IncomingQuery:
		return "INCOMING_QUERY"
	case OKDone:
		return "OK_DONE"
	case OKWaitForResponse:
		return "OK_WAIT_FOR_RESPONSE"
	case ServerShutdown:
		return "SERVER_SHUTDOWN"
	case CSVTransfer:
		return "CSV_TRANSFER"
	case UnknownCommand:
		return "UNKNOWN_COMMAND"
	case ObjectNotFound:
		return "OBJECT_NOT_FOUND"
	case IncorrectFormat:
		return "INCORRECT_FORMAT"
	case ExecutionError:
		return "EXECUTION_ERROR"
	default:
		return "UNKNOWN_STATUS"
	}
}
